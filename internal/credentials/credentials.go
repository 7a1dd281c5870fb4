// Package credentials stores the bearer token used for API calls.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// Provider reads and writes the bearer token.
// Token returns "" and no error when no token is stored.
type Provider interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// FileProvider keeps the token in a JSON file in oauth2.Token format.
// The file is read on every call; nothing is cached in memory.
type FileProvider struct {
	path string
}

// NewFileProvider returns a provider backed by the file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Token returns the stored access token.
func (p *FileProvider) Token() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("invalid %s: %w", filepath.Base(p.path), err)
	}
	return token.AccessToken, nil
}

// SetToken writes the token with mode 0600, creating the directory if needed.
func (p *FileProvider) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.MarshalIndent(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0600)
}

// Clear removes the token file. A missing file is not an error.
func (p *FileProvider) Clear() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Memory is an in-process Provider.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory returns a Memory provider holding token.
func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Token() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	return m.SetToken("")
}
