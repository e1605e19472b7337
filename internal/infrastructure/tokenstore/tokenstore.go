// Package tokenstore persists the session token, the only durable client
// state. The token is an opaque string; its file is readable by the owner
// only.
package tokenstore

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Store keeps the token in memory behind a RWMutex and mirrors it to a
// file. Reads during request construction and the login/logout writers
// share the same lock, so a request is never built with a half-cleared
// token.
type Store struct {
	path string

	mu    sync.RWMutex
	token string
}

// New creates a Store backed by path and loads any previously persisted
// token. A missing file just means no session to restore.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token returns the current token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores the token in memory and on disk.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear drops the token from memory and disk. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
