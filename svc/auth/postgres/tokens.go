package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/dmitrymomot/anihub/svc/auth"
)

// TokenStorage implements auth.TokenStorage using PostgreSQL. An account has
// at most one row; issuing a new token overwrites it.
type TokenStorage struct {
	pool poolIface
}

func NewTokenStorage(pool poolIface) *TokenStorage {
	return &TokenStorage{pool: pool}
}

func (s *TokenStorage) ReplaceForAccount(ctx context.Context, t auth.VerificationToken) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO verification_tokens (token_hash, account_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE
		SET token_hash = EXCLUDED.token_hash,
		    expires_at = EXCLUDED.expires_at,
		    created_at = now()
	`, t.Hash, t.AccountID, t.ExpiresAt)
	if err != nil {
		return oops.Code("TOKEN_REPLACE_FAILED").
			With("operation", "upsert verification_token").
			With("account_id", t.AccountID.String()).
			Wrap(err)
	}
	return nil
}

func (s *TokenStorage) Take(ctx context.Context, hash string) (auth.VerificationToken, error) {
	t := auth.VerificationToken{Hash: hash}
	err := s.pool.QueryRow(ctx, `
		DELETE FROM verification_tokens
		WHERE token_hash = $1
		RETURNING account_id, expires_at
	`, hash).Scan(&t.AccountID, &t.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.VerificationToken{}, oops.Code("TOKEN_NOT_FOUND").Wrap(auth.ErrTokenNotFound)
	}
	if err != nil {
		return auth.VerificationToken{}, oops.Code("TOKEN_TAKE_FAILED").
			With("operation", "delete verification_token").
			Wrap(err)
	}
	return t, nil
}

// DeleteExpired removes tokens that expired before the given instant.
func (s *TokenStorage) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM verification_tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, oops.Code("TOKEN_DELETE_EXPIRED_FAILED").
			With("operation", "delete expired verification_tokens").
			Wrap(err)
	}
	return tag.RowsAffected(), nil
}

var (
	_ auth.TokenStorage = (*TokenStorage)(nil)
	_ auth.TokenPruner  = (*TokenStorage)(nil)
)
