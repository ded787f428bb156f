package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/memory"
)

func TestTokenStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	s := memory.NewTokenStore()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, s.ReplaceForAccount(ctx, auth.VerificationToken{Hash: "a1", AccountID: alice, ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, s.ReplaceForAccount(ctx, auth.VerificationToken{Hash: "a2", AccountID: alice, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, s.ReplaceForAccount(ctx, auth.VerificationToken{Hash: "b1", AccountID: bob, ExpiresAt: now.Add(-time.Minute)}))

	assert.Len(t, s.ForAccount(alice), 1, "replace keeps a single token per account")

	n, err := s.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, s.ForAccount(bob))

	got, err := s.Take(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, alice, got.AccountID)

	_, err = s.Take(ctx, "a2")
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)
}

func TestAccountStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := memory.NewAccountStore()

	acc, err := s.Create(ctx, auth.Account{ID: uuid.New(), Email: "a@x.com", Name: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = s.Create(ctx, auth.Account{ID: uuid.New(), Email: "a@x.com", Name: "other", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	_, err = s.Create(ctx, auth.Account{ID: uuid.New(), Email: "b@x.com", Name: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrNameTaken)

	_, err = s.FindByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, auth.ErrAccountNotFound, "lookups are case-sensitive")

	require.NoError(t, s.SetVerified(ctx, acc.ID))
	got, err := s.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	up, err := s.UpsertOAuth(ctx, auth.OAuthAccount{Email: "a@x.com", Name: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, up.ID)

	_, err = s.UpsertOAuth(ctx, auth.OAuthAccount{Email: "c@x.com", Name: "alice"})
	assert.ErrorIs(t, err, auth.ErrNameTaken)
	assert.Equal(t, 1, s.Len())
}
