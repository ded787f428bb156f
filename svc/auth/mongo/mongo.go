// Package mongo implements the auth stores on MongoDB.
//
// Unique indexes on email and name back account uniqueness. Verification
// tokens are keyed by account, so issuing a new one replaces the previous
// document in a single write, and a token is taken with FindOneAndDelete.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	AccountsCollection = "accounts"
	TokensCollection   = "verification_tokens"

	emailIndex = "accounts_email_key"
	nameIndex  = "accounts_name_key"
	hashIndex  = "verification_tokens_hash_key"

	// expired tokens outlive their expiry so consumers can tell expired from unknown
	tokenRetention = 24 * time.Hour
)

// EnsureIndexes creates the indexes the stores rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AccountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName(nameIndex)},
	})
	if err != nil {
		return errors.Join(ErrIndexes, err)
	}

	_, err = db.Collection(TokensCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "hash", Value: 1}}, Options: options.Index().SetUnique(true).SetName(hashIndex)},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(tokenRetention.Seconds())),
		},
	})
	if err != nil {
		return errors.Join(ErrIndexes, err)
	}
	return nil
}

var ErrIndexes = errors.New("mongo: failed to create auth indexes")
