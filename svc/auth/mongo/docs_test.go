package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/anihub/svc/auth"
)

func TestAccountDoc_RoundTrip(t *testing.T) {
	acc := auth.Account{
		ID:        uuid.New(),
		Email:     "g@x.com",
		Name:      "Gina",
		AvatarURL: "https://example.com/g.png",
		Verified:  true,
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(toAccountDoc(acc))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, acc.ID.String(), m["_id"])
	_, hasPassword := m["password_hash"]
	assert.False(t, hasPassword, "passwordless accounts store no hash field")

	var doc accountDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got, err := doc.account()
	require.NoError(t, err)
	assert.Equal(t, acc, got)
}

func TestAccountDoc_InvalidID(t *testing.T) {
	_, err := accountDoc{ID: "nope"}.account()
	assert.Error(t, err)
}

func TestPickEmailFirst(t *testing.T) {
	byName := accountDoc{ID: "1", Email: "other@x.com", Name: "alice"}
	byEmail := accountDoc{ID: "2", Email: "a@x.com", Name: "bob"}

	got, ok := pickEmailFirst([]accountDoc{byName, byEmail}, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, byEmail, got)

	got, ok = pickEmailFirst([]accountDoc{byName}, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, byName, got)

	_, ok = pickEmailFirst(nil, "a@x.com")
	assert.False(t, ok)
}

func TestConflictOr(t *testing.T) {
	dup := func(index string) error {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: anihub.accounts index: " + index + " dup key",
		}}}
	}

	assert.ErrorIs(t, conflictOr(dup(emailIndex), "X", "a@x.com"), auth.ErrEmailTaken)
	assert.ErrorIs(t, conflictOr(dup(nameIndex), "X", "a@x.com"), auth.ErrNameTaken)
	assert.ErrorIs(t, conflictOr(dup("_id_"), "X", "a@x.com"), auth.ErrConflict)

	other := conflictOr(errors.New("socket closed"), "ACCOUNT_CREATE_FAILED", "a@x.com")
	assert.NotErrorIs(t, other, auth.ErrConflict)
	assert.Contains(t, other.Error(), "socket closed")
}

func TestTokenDoc(t *testing.T) {
	id := uuid.New()
	tok, err := tokenDoc{AccountID: id.String(), Hash: "h", ExpiresAt: time.Unix(0, 0).UTC()}.token()
	require.NoError(t, err)
	assert.Equal(t, id, tok.AccountID)
	assert.Equal(t, "h", tok.Hash)
}
