package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ListRef identifies a remote list chosen by the user.
type ListRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// Prefs is the content of prefs.yaml.
type Prefs struct {
	DefaultList *ListRef `yaml:"default_list,omitempty"`
}

// PrefsStore reads and writes prefs.yaml.
type PrefsStore struct {
	path string
}

// NewPrefsStore returns a store for the file at path.
func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

// Load returns the stored prefs. A missing file yields empty prefs.
func (s *PrefsStore) Load() (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("failed to read prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse prefs: %w", err)
	}
	return p, nil
}

// Save writes prefs atomically via a temp file.
func (s *PrefsStore) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename prefs: %w", err)
	}
	return nil
}

// DefaultList returns the remembered destination list, or nil if none is set.
func (s *PrefsStore) DefaultList() (*ListRef, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	if p.DefaultList == nil || p.DefaultList.ID == "" {
		return nil, nil
	}
	return p.DefaultList, nil
}

// SetDefaultList remembers ref as the destination list.
func (s *PrefsStore) SetDefaultList(ref ListRef) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.DefaultList = &ref
	return s.Save(p)
}

// Clear removes prefs.yaml. A missing file is not an error.
func (s *PrefsStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
