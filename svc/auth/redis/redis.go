// Package redis stores verification tokens in Redis.
//
// Each token lives under its hash and an account key points at the current
// hash. GETDEL makes taking a token atomic.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/dmitrymomot/anihub/svc/auth"
)

const (
	defaultPrefix = "anihub:verification:"
	// expired tokens outlive their expiry so consumers can tell expired from unknown
	defaultRetention = 24 * time.Hour
)

// client is the subset of redis.UniversalClient used by TokenStorage.
type client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetArgs(ctx context.Context, key string, value any, a redis.SetArgs) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type tokenValue struct {
	AccountID uuid.UUID `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenStorage struct {
	client    client
	prefix    string
	retention time.Duration
	now       func() time.Time
}

type Option func(*TokenStorage)

func WithPrefix(p string) Option {
	return func(s *TokenStorage) { s.prefix = p }
}

// WithRetention sets how long a token key outlives its expiry.
func WithRetention(d time.Duration) Option {
	return func(s *TokenStorage) {
		if d >= 0 {
			s.retention = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TokenStorage) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenStorage(c client, opts ...Option) *TokenStorage {
	s := &TokenStorage{
		client:    c,
		prefix:    defaultPrefix,
		retention: defaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReplaceForAccount writes the new token before swapping the account pointer,
// so racing replacements leave exactly one live token behind.
func (s *TokenStorage) ReplaceForAccount(ctx context.Context, t auth.VerificationToken) error {
	payload, err := json.Marshal(tokenValue{AccountID: t.AccountID, ExpiresAt: t.ExpiresAt})
	if err != nil {
		return oops.Code("TOKEN_ENCODE_FAILED").Wrap(err)
	}

	ttl := t.ExpiresAt.Sub(s.now()) + s.retention
	if ttl <= 0 {
		ttl = time.Second
	}

	if err := s.client.Set(ctx, s.tokenKey(t.Hash), payload, ttl).Err(); err != nil {
		return oops.Code("TOKEN_REPLACE_FAILED").With("account_id", t.AccountID.String()).Wrap(err)
	}

	prev, err := s.client.SetArgs(ctx, s.accountKey(t.AccountID), t.Hash, redis.SetArgs{TTL: ttl, Get: true}).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return oops.Code("TOKEN_REPLACE_FAILED").With("account_id", t.AccountID.String()).Wrap(err)
	}

	if prev != "" && prev != t.Hash {
		if err := s.client.Del(ctx, s.tokenKey(prev)).Err(); err != nil {
			return oops.Code("TOKEN_REPLACE_FAILED").With("account_id", t.AccountID.String()).Wrap(err)
		}
	}
	return nil
}

func (s *TokenStorage) Take(ctx context.Context, hash string) (auth.VerificationToken, error) {
	raw, err := s.client.GetDel(ctx, s.tokenKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.VerificationToken{}, oops.Code("TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
	}
	if err != nil {
		return auth.VerificationToken{}, oops.Code("TOKEN_TAKE_FAILED").Wrap(err)
	}

	var v tokenValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return auth.VerificationToken{}, oops.Code("TOKEN_DECODE_FAILED").Wrap(err)
	}
	return auth.VerificationToken{Hash: hash, AccountID: v.AccountID, ExpiresAt: v.ExpiresAt}, nil
}

func (s *TokenStorage) tokenKey(hash string) string {
	return s.prefix + "token:" + hash
}

func (s *TokenStorage) accountKey(id uuid.UUID) string {
	return fmt.Sprintf("%saccount:%s", s.prefix, id)
}

var _ auth.TokenStorage = (*TokenStorage)(nil)
