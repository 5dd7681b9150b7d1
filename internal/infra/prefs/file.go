// Package prefs persists the selected language in a small YAML file.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"vocalcart/internal/domain"
)

type document struct {
	Language string `yaml:"language"`
}

type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns "" when nothing has been saved yet.
func (f *FileStore) Load() (domain.Language, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading preferences: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing preferences: %w", err)
	}

	return domain.Language(doc.Language), nil
}

func (f *FileStore) Save(lang domain.Language) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(document{Language: string(lang)})
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating preferences dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing preferences: %w", err)
	}
	return nil
}
