package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/anihub/svc/auth"
)

// tokenDoc is keyed by account so an account holds at most one token.
type tokenDoc struct {
	AccountID string    `bson:"_id"`
	Hash      string    `bson:"hash"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (d tokenDoc) token() (auth.VerificationToken, error) {
	id, err := uuid.Parse(d.AccountID)
	if err != nil {
		return auth.VerificationToken{}, oops.Code("TOKEN_INVALID_ACCOUNT_ID").With("account_id", d.AccountID).Wrap(err)
	}
	return auth.VerificationToken{Hash: d.Hash, AccountID: id, ExpiresAt: d.ExpiresAt}, nil
}

// TokenStorage implements auth.TokenStorage using MongoDB.
type TokenStorage struct {
	coll *mongo.Collection
}

func NewTokenStorage(db *mongo.Database) *TokenStorage {
	return &TokenStorage{coll: db.Collection(TokensCollection)}
}

func (s *TokenStorage) ReplaceForAccount(ctx context.Context, t auth.VerificationToken) error {
	doc := tokenDoc{AccountID: t.AccountID.String(), Hash: t.Hash, ExpiresAt: t.ExpiresAt.UTC()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.AccountID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return oops.Code("TOKEN_REPLACE_FAILED").With("account_id", doc.AccountID).Wrap(err)
	}
	return nil
}

func (s *TokenStorage) Take(ctx context.Context, hash string) (auth.VerificationToken, error) {
	var doc tokenDoc
	err := s.coll.FindOneAndDelete(ctx, bson.D{{Key: "hash", Value: hash}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return auth.VerificationToken{}, oops.Code("TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
	}
	if err != nil {
		return auth.VerificationToken{}, oops.Code("TOKEN_TAKE_FAILED").Wrap(err)
	}
	return doc.token()
}

// DeleteExpired removes tokens that expired before the given instant.
func (s *TokenStorage) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: before.UTC()}}}})
	if err != nil {
		return 0, oops.Code("TOKEN_DELETE_EXPIRED_FAILED").Wrap(err)
	}
	return res.DeletedCount, nil
}

var (
	_ auth.TokenStorage = (*TokenStorage)(nil)
	_ auth.TokenPruner  = (*TokenStorage)(nil)
)
