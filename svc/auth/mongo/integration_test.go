//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgmongo "github.com/dmitrymomot/anihub/pkg/mongo"
	"github.com/dmitrymomot/anihub/svc/auth"
	authmongo "github.com/dmitrymomot/anihub/svc/auth/mongo"
)

func TestMongoStores(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.PortEndpoint(ctx, "27017/tcp", "")
	require.NoError(t, err)

	db, err := pkgmongo.NewDatabase(ctx, pkgmongo.Config{
		ConnectionURL:  fmt.Sprintf("mongodb://%s", endpoint),
		Database:       "anihub_test",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  5,
		RetryInterval:  time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, authmongo.EnsureIndexes(ctx, db))

	accounts := authmongo.NewAccountRepository(db)
	tokens := auth.NewVerificationTokens(authmongo.NewTokenStorage(db))

	acc, err := accounts.Create(ctx, auth.Account{ID: uuid.New(), Email: "a@x.com", Name: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = accounts.Create(ctx, auth.Account{ID: uuid.New(), Email: "a@x.com", Name: "bob", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	_, err = accounts.Create(ctx, auth.Account{ID: uuid.New(), Email: "b@x.com", Name: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, auth.ErrNameTaken)

	first, _, err := tokens.IssueFor(ctx, acc.ID)
	require.NoError(t, err)
	second, _, err := tokens.IssueFor(ctx, acc.ID)
	require.NoError(t, err)

	_, err = tokens.Consume(ctx, first)
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)
	id, err := tokens.Consume(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, id)
	_, err = tokens.Consume(ctx, second)
	assert.ErrorIs(t, err, auth.ErrTokenNotFound)

	same, err := accounts.UpsertOAuth(ctx, auth.OAuthAccount{Email: "a@x.com", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, same.ID)
}
