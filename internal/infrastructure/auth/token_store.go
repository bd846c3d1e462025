package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 25 * time.Millisecond

// FileStore persists the session token between console runs. Reads take a
// shared lock and writes an exclusive one, so concurrent runs never observe
// a half-written token.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore returns a store for the token at path; the lock lives next to it.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored token, or "" when none has been saved.
func (s *FileStore) Load(ctx context.Context) (string, error) {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	locked, err := s.lock.TryRLockContext(ctx, lockRetryInterval)
	if err != nil {
		return "", fmt.Errorf("locking token file: %w", err)
	}
	if !locked {
		return "", fmt.Errorf("token file %s is locked", s.path)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save replaces the stored token.
func (s *FileStore) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return s.withWriteLock(ctx, func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
			return fmt.Errorf("writing token file: %w", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("replacing token file: %w", err)
		}
		return nil
	})
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	return s.withWriteLock(ctx, func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing token file: %w", err)
		}
		return nil
	})
}

func (s *FileStore) withWriteLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("locking token file: %w", err)
	}
	if !locked {
		return fmt.Errorf("token file %s is locked", s.path)
	}
	defer s.lock.Unlock()
	return fn()
}
