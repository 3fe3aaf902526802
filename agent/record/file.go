package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// Log is the append-only persistence contract for order/check-in/lead
// history.
type Log[T any] interface {
	Append(ctx context.Context, rec T) error
	List(ctx context.Context) ([]T, error)
}

// envelope is the on-disk shape. Reads also accept a bare array for
// compatibility with stores written by earlier versions.
type envelope[T any] struct {
	Records     []T       `json:"records"`
	LastUpdated time.Time `json:"last_updated"`
}

// FileLog stores records in a single JSON file, rewritten in full on every
// append. There is no cross-process locking: concurrent writers are
// last-writer-wins.
type FileLog[T any] struct {
	path string
	now  func() time.Time
}

func NewFileLog[T any](path string) *FileLog[T] {
	return &FileLog[T]{path: path, now: time.Now}
}

// List loads the full history. An absent or corrupt resource is logged and
// treated as empty, never as an error.
func (f *FileLog[T]) List(_ context.Context) ([]T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", f.path).Msg("record store unreadable, starting empty")
		}
		return nil, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err == nil && env.Records != nil {
		return env.Records, nil
	}

	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	log.Warn().Str("path", f.path).Msg("record store corrupt, starting empty")
	return nil, nil
}

// Append reads the current contents, appends rec and atomically rewrites the
// whole resource.
func (f *FileLog[T]) Append(ctx context.Context, rec T) error {
	records, err := f.List(ctx)
	if err != nil {
		return err
	}
	records = append(records, rec)

	env := envelope[T]{Records: records, LastUpdated: f.now().UTC()}
	if err := writeJSONAtomic(f.path, env); err != nil {
		return fmt.Errorf("%w: append to %s: %v", contractx.ErrPersistence, f.path, err)
	}

	log.Info().Str("path", f.path).Int("records", len(records)).Msg("record appended")
	return nil
}

// writeJSONAtomic marshals v and replaces path via a temp file in the same
// directory, so readers never observe a partial write.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
