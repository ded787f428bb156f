package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/anihub/svc/auth"
)

type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]auth.VerificationToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]auth.VerificationToken)}
}

func (s *TokenStore) ReplaceForAccount(_ context.Context, t auth.VerificationToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, existing := range s.tokens {
		if existing.AccountID == t.AccountID {
			delete(s.tokens, hash)
		}
	}
	s.tokens[t.Hash] = t
	return nil
}

func (s *TokenStore) Take(_ context.Context, hash string) (auth.VerificationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[hash]
	if !ok {
		return auth.VerificationToken{}, auth.ErrTokenNotFound
	}
	delete(s.tokens, hash)
	return t, nil
}

// ForAccount lists the stored tokens of an account.
func (s *TokenStore) ForAccount(id uuid.UUID) []auth.VerificationToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []auth.VerificationToken
	for _, t := range s.tokens {
		if t.AccountID == id {
			out = append(out, t)
		}
	}
	return out
}

func (s *TokenStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for hash, t := range s.tokens {
		if t.ExpiresAt.Before(before) {
			delete(s.tokens, hash)
			n++
		}
	}
	return n, nil
}

var (
	_ auth.TokenStorage = (*TokenStore)(nil)
	_ auth.TokenPruner  = (*TokenStore)(nil)
)
