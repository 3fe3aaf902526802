package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// CaseStore persists fraud cases in a JSON file and mutates them in place
// keyed by userName. Unlike the append logs, the file is a bare array so the
// format stays compatible with the seeded case files.
type CaseStore struct {
	path string
}

func NewCaseStore(path string) *CaseStore {
	return &CaseStore{path: path}
}

func (s *CaseStore) load() []Case {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("case store unreadable, treating as empty")
		}
		return nil
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("case store corrupt, treating as empty")
		return nil
	}
	return cases
}

// Find returns the case whose userName matches, case-insensitively.
func (s *CaseStore) Find(_ context.Context, userName string) (Case, error) {
	userName = strings.TrimSpace(userName)
	for _, c := range s.load() {
		if strings.EqualFold(c.UserName, userName) {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("%w: case for %q", contractx.ErrNotFound, userName)
}

// UpdateOutcome overwrites the status and outcome note of the matching case
// and rewrites the whole resource. The boolean reports whether a matching
// case was found.
func (s *CaseStore) UpdateOutcome(_ context.Context, userName, status, note string) (bool, error) {
	cases := s.load()
	userName = strings.TrimSpace(userName)

	found := false
	for i := range cases {
		if strings.EqualFold(cases[i].UserName, userName) {
			cases[i].Status = status
			cases[i].OutcomeNote = note
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := writeJSONAtomic(s.path, cases); err != nil {
		return false, fmt.Errorf("%w: update case %s: %v", contractx.ErrPersistence, userName, err)
	}

	log.Info().Str("path", s.path).Str("user", userName).Str("status", status).Msg("case updated")
	return true, nil
}
