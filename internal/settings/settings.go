// Package settings persists the admin platform settings to a JSON file on
// disk. The file is written atomically (temp file plus rename) so a crash
// mid-write never leaves a half-written settings document behind.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/biztech/portal-bff-go/internal/domain"
)

// FileStore reads and writes platform settings at a fixed path.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store backed by the given file path. The file does
// not have to exist yet; defaults are served until the first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get loads the persisted settings, falling back to defaults when the file
// has never been written.
func (s *FileStore) Get(ctx context.Context) (*domain.PlatformSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultPlatformSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var settings domain.PlatformSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings file: %w", err)
	}
	return &settings, nil
}

// Put replaces the persisted settings atomically.
func (s *FileStore) Put(ctx context.Context, settings *domain.PlatformSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
