package auth

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists accounts. Implementations are the source of
// truth for email and name uniqueness: Create must fail with ErrEmailTaken or
// ErrNameTaken even when a concurrent request passed the same pre-check.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
	// FindByEmail matches the address exactly.
	FindByEmail(ctx context.Context, email string) (Account, error)
	// FindByEmailOrName returns any account whose email or name matches.
	FindByEmailOrName(ctx context.Context, email, name string) (Account, error)
	Create(ctx context.Context, acc Account) (Account, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	// UpsertOAuth returns the account with the given email, creating a verified,
	// passwordless one when none exists. A name clash fails with ErrNameTaken.
	UpsertOAuth(ctx context.Context, in OAuthAccount) (Account, error)
}
