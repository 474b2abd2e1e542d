// Package prefs persists host-side user preferences between sessions.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Defaults for a user who never saved preferences.
const (
	DefaultUserName = "guest"
	DefaultFile     = "models/hypergraph.json"
)

// Prefs are the values remembered for one user.
type Prefs struct {
	UserName       string `json:"user_name"`
	Email          string `json:"email,omitempty"`
	HypergraphName string `json:"hypergraph_name,omitempty"`
	File           string `json:"file"`
}

// Default returns the guest preferences.
func Default() Prefs {
	return Prefs{UserName: DefaultUserName, File: DefaultFile}
}

// withDefaults fills empty fields from [Default].
func (p Prefs) withDefaults() Prefs {
	d := Default()
	if p.UserName == "" {
		p.UserName = d.UserName
	}
	if p.File == "" {
		p.File = d.File
	}
	return p
}

// FileStore keeps preferences as a JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a preferences store. If baseDir is empty, it
// defaults to ~/.config/hypergraph/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "hypergraph")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the preferences file path.
func (s *FileStore) Path() string {
	return filepath.Join(s.baseDir, "prefs.json")
}

// Load returns the saved preferences, or the defaults when none are saved.
func (s *FileStore) Load(ctx context.Context) (Prefs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Prefs{}, fmt.Errorf("read prefs file: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	return p.withDefaults(), nil
}

// Save writes p, filling empty fields with defaults.
func (s *FileStore) Save(ctx context.Context, p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p.withDefaults(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o600); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	return nil
}

// Update loads the preferences, applies fn, and saves the result.
func (s *FileStore) Update(ctx context.Context, fn func(*Prefs)) (Prefs, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return Prefs{}, err
	}
	fn(&p)
	if err := s.Save(ctx, p); err != nil {
		return Prefs{}, err
	}
	return p.withDefaults(), nil
}

// Clear removes the saved preferences.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove prefs file: %w", err)
	}
	return nil
}
