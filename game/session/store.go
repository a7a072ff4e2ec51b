package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TokenStore persists the session identity as a small JSON file so a
// restarted client can resume a session the server still holds. Room
// membership is deliberately not persisted; the server reports the room in
// its ReconnectSuccess payload.
type TokenStore struct {
	path string
}

// NewTokenStore returns a store writing to the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Save writes the identity portion of a session. The file is created with
// owner-only permissions; the token is a credential.
func (t *TokenStore) Save(s Session) error {
	data, err := json.MarshalIndent(Session{
		PlayerID: s.PlayerID,
		Username: s.Username,
		Token:    s.Token,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load reads a previously saved session. A missing file reads as
// ErrNotRegistered.
func (t *TokenStore) Load() (Session, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNotRegistered
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session file: %w", err)
	}
	return s, nil
}

// Clear removes the persisted session. Clearing a missing file is a no-op.
func (t *TokenStore) Clear() error {
	if err := os.Remove(t.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
