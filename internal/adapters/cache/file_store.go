package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore persists the cache as a single JSON file. The file is
// rewritten wholesale on every save via a temp-file rename, so readers
// never observe a partial write.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the persisted cache. A missing file yields an empty map;
// an unreadable or corrupt file is an error the caller may ignore.
func (s *FileStore) Load(_ context.Context) (map[string]Entry, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %q: %w", s.Path, err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("file store: parse %q: %w", s.Path, err)
	}
	if entries == nil {
		entries = map[string]Entry{}
	}

	return entries, nil
}

// Save replaces the persisted state with the given entries.
func (s *FileStore) Save(_ context.Context, entries map[string]Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("file store: marshal entries: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("file store: create %q: %w", dir, err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("file store: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("file store: rename %q: %w", tmp, err)
	}

	return nil
}
