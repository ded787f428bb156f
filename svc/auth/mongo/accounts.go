package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/anihub/svc/auth"
)

type accountDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	AvatarURL    string    `bson:"avatar_url,omitempty"`
	Verified     bool      `bson:"verified"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toAccountDoc(a auth.Account) accountDoc {
	return accountDoc{
		ID:           a.ID.String(),
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		AvatarURL:    a.AvatarURL,
		Verified:     a.Verified,
		CreatedAt:    a.CreatedAt.UTC(),
	}
}

func (d accountDoc) account() (auth.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return auth.Account{}, oops.Code("ACCOUNT_INVALID_ID").With("id", d.ID).Wrap(err)
	}
	return auth.Account{
		ID:           id,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		AvatarURL:    d.AvatarURL,
		Verified:     d.Verified,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// AccountRepository implements auth.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(AccountsCollection), now: time.Now}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (auth.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByEmailOrName prefers the email match when both exist.
func (r *AccountRepository) FindByEmailOrName(ctx context.Context, email, name string) (auth.Account, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "name", Value: name}},
	}}}, options.Find().SetLimit(2))
	if err != nil {
		return auth.Account{}, oops.Code("ACCOUNT_FIND_FAILED").With("email", email).Wrap(err)
	}

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return auth.Account{}, oops.Code("ACCOUNT_FIND_FAILED").With("email", email).Wrap(err)
	}
	doc, ok := pickEmailFirst(docs, email)
	if !ok {
		return auth.Account{}, oops.Code("ACCOUNT_NOT_FOUND").With("email", email).With("name", name).Wrap(auth.ErrAccountNotFound)
	}
	return doc.account()
}

func (r *AccountRepository) Create(ctx context.Context, acc auth.Account) (auth.Account, error) {
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = r.now()
	}
	doc := toAccountDoc(acc)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return auth.Account{}, conflictOr(err, "ACCOUNT_CREATE_FAILED", acc.Email)
	}
	return doc.account()
}

func (r *AccountRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}}},
	)
	if err != nil {
		return oops.Code("ACCOUNT_VERIFY_FAILED").With("account_id", id.String()).Wrap(err)
	}
	if res.MatchedCount == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("account_id", id.String()).Wrap(auth.ErrAccountNotFound)
	}
	return nil
}

func (r *AccountRepository) UpsertOAuth(ctx context.Context, in auth.OAuthAccount) (auth.Account, error) {
	acc, err := r.FindByEmail(ctx, in.Email)
	if !errors.Is(err, auth.ErrAccountNotFound) {
		return acc, err
	}

	acc, err = r.Create(ctx, auth.Account{
		ID:        uuid.New(),
		Email:     in.Email,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
		Verified:  true,
	})
	if errors.Is(err, auth.ErrEmailTaken) {
		// a concurrent request created it first
		return r.FindByEmail(ctx, in.Email)
	}
	return acc, err
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.D) (auth.Account, error) {
	var doc accountDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return auth.Account{}, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrAccountNotFound)
	}
	if err != nil {
		return auth.Account{}, oops.Code("ACCOUNT_FIND_FAILED").Wrap(err)
	}
	return doc.account()
}

func pickEmailFirst(docs []accountDoc, email string) (accountDoc, bool) {
	for _, d := range docs {
		if d.Email == email {
			return d, true
		}
	}
	if len(docs) > 0 {
		return docs[0], true
	}
	return accountDoc{}, false
}

func conflictOr(err error, code, email string) error {
	if mongo.IsDuplicateKeyError(err) {
		msg := err.Error()
		switch {
		case strings.Contains(msg, emailIndex):
			return oops.Code("ACCOUNT_EMAIL_TAKEN").With("email", email).Wrap(auth.ErrEmailTaken)
		case strings.Contains(msg, nameIndex):
			return oops.Code("ACCOUNT_NAME_TAKEN").With("email", email).Wrap(auth.ErrNameTaken)
		default:
			return oops.Code("ACCOUNT_CONFLICT").With("email", email).Wrap(auth.ErrConflict)
		}
	}
	return oops.Code(code).With("email", email).Wrap(err)
}

var _ auth.AccountRepository = (*AccountRepository)(nil)
