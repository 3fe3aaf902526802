package state

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// SlotSpec declares one piece of information a session collects.
// Order of specs defines the order of MissingFields output.
type SlotSpec struct {
	Name     string // canonical slot key, e.g. "drink_type"
	Label    string // human-readable name used in missing-field messages
	List     bool   // list-valued slot (extras, objectives, stress factors)
	Required bool
}

// Session is the mutable per-conversation slot collection. It is owned by a
// single conversation and mutated only through tool dispatch, so it carries no
// internal locking.
type Session struct {
	ID    string
	specs []SlotSpec

	scalars map[string]string
	lists   map[string][]string

	history   []Interaction
	UpdatedAt time.Time
}

// Interaction is one scoring/verification call recorded against the session.
// History is in-memory only and dies with the session.
type Interaction struct {
	Kind      string    `json:"kind"`
	ConceptID string    `json:"concept_id,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	Ratio     float64   `json:"ratio"`
	At        time.Time `json:"at"`
}

func NewSession(id string, specs []SlotSpec, now time.Time) *Session {
	return &Session{
		ID:        id,
		specs:     specs,
		scalars:   make(map[string]string, len(specs)),
		lists:     make(map[string][]string, 2),
		UpdatedAt: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *Session) spec(name string) (SlotSpec, bool) {
	for _, sp := range s.specs {
		if sp.Name == name {
			return sp, true
		}
	}
	return SlotSpec{}, false
}

// Set overwrites a scalar slot. The call either fully applies or leaves the
// session untouched and returns a descriptive error.
func (s *Session) Set(name, value string) error {
	sp, ok := s.spec(name)
	if !ok {
		return fmt.Errorf("%w: unknown slot %q", contractx.ErrValidation, name)
	}
	if sp.List {
		return fmt.Errorf("%w: slot %q is list-valued, use AppendUnique", contractx.ErrValidation, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: empty value for slot %q", contractx.ErrValidation, name)
	}
	s.scalars[name] = value
	return nil
}

// AppendUnique adds a value to a list slot unless an equal value (compared
// case-insensitively) is already present. Returns false when the value was
// already there.
func (s *Session) AppendUnique(name, value string) (bool, error) {
	sp, ok := s.spec(name)
	if !ok {
		return false, fmt.Errorf("%w: unknown slot %q", contractx.ErrValidation, name)
	}
	if !sp.List {
		return false, fmt.Errorf("%w: slot %q is scalar, use Set", contractx.ErrValidation, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, fmt.Errorf("%w: empty value for slot %q", contractx.ErrValidation, name)
	}
	for _, existing := range s.lists[name] {
		if strings.EqualFold(existing, value) {
			return false, nil
		}
	}
	s.lists[name] = append(s.lists[name], value)
	return true, nil
}

// Get returns a scalar slot value, empty when unset.
func (s *Session) Get(name string) string {
	return s.scalars[name]
}

// List returns the values of a list slot in insertion order.
func (s *Session) List(name string) []string {
	return s.lists[name]
}

// IsComplete reports whether every required slot is non-empty. List slots
// count as set once they hold at least one value.
func (s *Session) IsComplete() bool {
	return len(s.MissingFields()) == 0
}

// MissingFields returns the human-readable labels of unmet required slots, in
// spec order.
func (s *Session) MissingFields() []string {
	var missing []string
	for _, sp := range s.specs {
		if !sp.Required {
			continue
		}
		if sp.List {
			if len(s.lists[sp.Name]) == 0 {
				missing = append(missing, sp.Label)
			}
			continue
		}
		if s.scalars[sp.Name] == "" {
			missing = append(missing, sp.Label)
		}
	}
	return missing
}

// Snapshot returns the collected slots for status reporting. List slots are
// always present so callers see an empty list rather than a missing key.
func (s *Session) Snapshot() map[string]any {
	out := make(map[string]any, len(s.specs))
	for _, sp := range s.specs {
		if sp.List {
			values := s.lists[sp.Name]
			if values == nil {
				values = []string{}
			}
			out[sp.Name] = values
			continue
		}
		out[sp.Name] = s.scalars[sp.Name]
	}
	return out
}

// Reset replaces all slot state and history with a fresh session. Used only
// after a successful completion flow.
func (s *Session) Reset(now time.Time) {
	s.scalars = make(map[string]string, len(s.specs))
	s.lists = make(map[string][]string, 2)
	s.history = nil
	s.Touch(now)
}

// RecordInteraction appends a scoring interaction to the in-memory history.
func (s *Session) RecordInteraction(rec Interaction) {
	s.history = append(s.history, rec)
}

// Interactions returns the session's scoring history in call order.
func (s *Session) Interactions() []Interaction {
	return s.history
}
