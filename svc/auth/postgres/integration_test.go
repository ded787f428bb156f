//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/anihub/pkg/pg"
	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/postgres"
)

func TestPostgresStores(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("anihub_test"),
		tcpostgres.WithUsername("anihub"),
		tcpostgres.WithPassword("anihub"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pg.Connect(ctx, pg.Config{
		ConnectionString: connStr,
		MaxOpenConns:     10,
		MaxIdleConns:     1,
		RetryAttempts:    5,
		RetryInterval:    time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, pg.Migrate(ctx, pool, postgres.Migrations(), log))

	accounts := postgres.NewAccountRepository(pool)
	storage := postgres.NewTokenStorage(pool)
	tokens := auth.NewVerificationTokens(storage)

	acc, err := accounts.Create(ctx, auth.Account{
		ID:           [16]byte{1},
		Email:        "a@x.com",
		Name:         "alice",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = accounts.Create(ctx, auth.Account{ID: [16]byte{2}, Email: "a@x.com", Name: "bob", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	_, err = accounts.Create(ctx, auth.Account{ID: [16]byte{3}, Email: "b@x.com", Name: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrNameTaken)

	t.Run("token is consumed once", func(t *testing.T) {
		first, _, err := tokens.IssueFor(ctx, acc.ID)
		require.NoError(t, err)
		second, _, err := tokens.IssueFor(ctx, acc.ID)
		require.NoError(t, err)

		_, err = tokens.Consume(ctx, first)
		assert.ErrorIs(t, err, auth.ErrTokenNotFound)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := tokens.Consume(ctx, second)
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				} else if !errors.Is(err, auth.ErrTokenNotFound) {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, successes)
	})

	t.Run("oauth upsert", func(t *testing.T) {
		existing, err := accounts.UpsertOAuth(ctx, auth.OAuthAccount{Email: "a@x.com", Name: "Alice L"})
		require.NoError(t, err)
		assert.Equal(t, acc.ID, existing.ID)

		created, err := accounts.UpsertOAuth(ctx, auth.OAuthAccount{Email: "g@x.com", Name: "Gina"})
		require.NoError(t, err)
		assert.True(t, created.Verified)
		assert.False(t, created.HasPassword())

		_, err = accounts.UpsertOAuth(ctx, auth.OAuthAccount{Email: "h@x.com", Name: "Gina"})
		assert.ErrorIs(t, err, auth.ErrNameTaken)
	})

	t.Run("set verified", func(t *testing.T) {
		require.NoError(t, accounts.SetVerified(ctx, acc.ID))
		got, err := accounts.FindByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)
	})
}
