package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// DefaultVerificationTTL is the lifetime of an email-verification token.
const DefaultVerificationTTL = time.Hour

const verificationTokenBytes = 32

// VerificationToken is the stored form of an email-verification challenge.
// Only the SHA-256 hash of the value sent to the user is kept.
type VerificationToken struct {
	Hash      string
	AccountID uuid.UUID
	ExpiresAt time.Time
}

// TokenStorage persists verification tokens.
type TokenStorage interface {
	// ReplaceForAccount deletes every token of t.AccountID and stores t, atomically.
	ReplaceForAccount(ctx context.Context, t VerificationToken) error
	// Take deletes the token with the given hash and returns it. Of several
	// concurrent calls for one hash at most one may succeed; the rest get
	// ErrTokenNotFound.
	Take(ctx context.Context, hash string) (VerificationToken, error)
}

// VerificationStore issues and consumes single-use verification tokens.
type VerificationStore interface {
	IssueFor(ctx context.Context, accountID uuid.UUID) (raw string, expiresAt time.Time, err error)
	Consume(ctx context.Context, raw string) (uuid.UUID, error)
}

// VerificationTokens issues and consumes single-use email verification
// tokens. Only the SHA-256 of a token reaches the storage.
type VerificationTokens struct {
	storage TokenStorage
	ttl     time.Duration
	now     func() time.Time
	random  io.Reader
}

// VerificationOption configures VerificationTokens.
type VerificationOption func(*VerificationTokens)

// WithVerificationTTL sets how long a token stays valid. Non-positive values
// keep DefaultVerificationTTL.
func WithVerificationTTL(ttl time.Duration) VerificationOption {
	return func(v *VerificationTokens) {
		if ttl > 0 {
			v.ttl = ttl
		}
	}
}

// WithVerificationClock replaces time.Now for expiry checks.
func WithVerificationClock(now func() time.Time) VerificationOption {
	return func(v *VerificationTokens) {
		if now != nil {
			v.now = now
		}
	}
}

// NewVerificationTokens creates a token manager over storage.
func NewVerificationTokens(storage TokenStorage, opts ...VerificationOption) *VerificationTokens {
	v := &VerificationTokens{
		storage: storage,
		ttl:     DefaultVerificationTTL,
		now:     time.Now,
		random:  rand.Reader,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IssueFor invalidates the account's previous tokens and returns a new raw value.
func (v *VerificationTokens) IssueFor(ctx context.Context, accountID uuid.UUID) (string, time.Time, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := io.ReadFull(v.random, b); err != nil {
		return "", time.Time{}, fmt.Errorf("generate verification token: %w", err)
	}
	raw := hex.EncodeToString(b)
	expiresAt := v.now().Add(v.ttl)

	if err := v.storage.ReplaceForAccount(ctx, VerificationToken{
		Hash:      HashToken(raw),
		AccountID: accountID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// Consume removes the token and returns its owner. An expired token is
// removed as well and reported as ErrTokenExpired.
func (v *VerificationTokens) Consume(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, ErrTokenNotFound
	}
	t, err := v.storage.Take(ctx, HashToken(raw))
	if err != nil {
		return uuid.Nil, err
	}
	if v.now().After(t.ExpiresAt) {
		return uuid.Nil, ErrTokenExpired
	}
	return t.AccountID, nil
}

// HashToken returns the hex SHA-256 of a raw token value.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// TokenPruner is implemented by storages that keep expired tokens until
// they are explicitly removed.
type TokenPruner interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
