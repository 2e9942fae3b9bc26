package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile keeps a collection as an indented JSON array in one file. The
// file is re-read on every call so edits made by hand show up at once.
type JSONFile[T any] struct {
	mu   sync.Mutex
	path string
}

// OpenJSONFile creates the file as an empty array when it does not exist
// yet or is empty. Later reads of a missing or broken file fail with
// ErrUnavailable instead.
func OpenJSONFile[T any](path string) (*JSONFile[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0):
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return &JSONFile[T]{path: path}, nil
}

func (f *JSONFile[T]) LoadAll(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.read()
}

func (f *JSONFile[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	recs, err := f.read()
	if err != nil {
		return err
	}
	next, err := fn(recs)
	if err != nil {
		return err
	}
	return f.write(next)
}

func (f *JSONFile[T]) read() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.path, err)
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, f.path, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (f *JSONFile[T]) write(recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	// write next to the target and rename so readers never see half a file
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, f.path, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, f.path, err)
	}
	slog.Debug("collection written", "path", f.path, "records", len(recs))
	return nil
}
