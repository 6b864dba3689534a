// Package tokens holds the process-wide bearer credential.
//
// Store keeps the token in memory and in the local key-value storage under
// localstore.KeyAccessToken, so a restarted client is still signed in.
// A token placed in a request context with WithToken overrides the store for
// that request only.
package tokens

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

var ErrEmptyToken = errors.New("empty token")

type Store struct {
	mu    sync.RWMutex
	token string
	repo  localstore.Repository
	log   logging.Logger
}

func NewStore(repo localstore.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "tokens")}
}

// Get returns the in-memory token, falling back to the persisted one.
// Storage failures are logged and reported as "no token".
func (s *Store) Get(ctx context.Context) (string, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token, true
	}

	b, err := s.repo.Get(ctx, localstore.KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token failed, treating as absent", "error", err)
		return "", false
	}
	if len(b) == 0 {
		return "", false
	}
	return string(b), true
}

// Set replaces the token in memory and in storage. When persisting fails the
// in-memory token is kept and the storage error is returned.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.repo.Set(ctx, localstore.KeyAccessToken, []byte(token)); err != nil {
		s.log.Warn(ctx, "persisting token failed", "error", err)
		return err
	}
	return nil
}

// Clear forgets the token in memory and in storage.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, localstore.KeyAccessToken); err != nil {
		s.log.Warn(ctx, "removing persisted token failed", "error", err)
		return err
	}
	return nil
}
