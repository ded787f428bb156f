package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/dmitrymomot/anihub/pkg/pg"
	"github.com/dmitrymomot/anihub/svc/auth"
)

const accountColumns = `id, email, name, COALESCE(password_hash, ''), COALESCE(avatar_url, ''), verified, created_at`

const (
	emailConstraint = "accounts_email_key"
	nameConstraint  = "accounts_name_key"
)

// AccountRepository implements auth.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool poolIface
}

func NewAccountRepository(pool poolIface) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Account{}, oops.Code("ACCOUNT_NOT_FOUND").
			With("account_id", id.String()).
			Wrap(auth.ErrAccountNotFound)
	}
	return acc, err
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Account{}, oops.Code("ACCOUNT_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrAccountNotFound)
	}
	return acc, err
}

// FindByEmailOrName returns the email match first when both exist.
func (r *AccountRepository) FindByEmailOrName(ctx context.Context, email, name string) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1 OR name = $2
		ORDER BY (email = $1) DESC
		LIMIT 1
	`, email, name)
	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Account{}, oops.Code("ACCOUNT_NOT_FOUND").
			With("email", email).
			With("name", name).
			Wrap(auth.ErrAccountNotFound)
	}
	return acc, err
}

func (r *AccountRepository) Create(ctx context.Context, acc auth.Account) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, email, name, password_hash, avatar_url, verified, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		RETURNING `+accountColumns,
		acc.ID, acc.Email, acc.Name, acc.PasswordHash, acc.AvatarURL, acc.Verified, acc.CreatedAt,
	)
	created, err := scanAccount(row)
	if err != nil {
		return auth.Account{}, conflictOr(err, "ACCOUNT_CREATE_FAILED", acc.Email)
	}
	return created, nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return oops.Code("ACCOUNT_VERIFY_FAILED").
			With("operation", "update accounts.verified").
			With("account_id", id.String()).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").
			With("account_id", id.String()).
			Wrap(auth.ErrAccountNotFound)
	}
	return nil
}

// UpsertOAuth inserts a verified, passwordless account unless the email is
// already registered, in which case the existing row is returned unchanged.
func (r *AccountRepository) UpsertOAuth(ctx context.Context, in auth.OAuthAccount) (auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, email, name, avatar_url, verified)
		VALUES ($1, $2, $3, NULLIF($4, ''), TRUE)
		ON CONFLICT (email) DO NOTHING
		RETURNING `+accountColumns,
		uuid.New(), in.Email, in.Name, in.AvatarURL,
	)
	acc, err := scanAccount(row)
	switch {
	case err == nil:
		return acc, nil
	case errors.Is(err, pgx.ErrNoRows):
		// lost the race to a concurrent insert of the same email
		return r.FindByEmail(ctx, in.Email)
	default:
		return auth.Account{}, conflictOr(err, "ACCOUNT_UPSERT_FAILED", in.Email)
	}
}

func conflictOr(err error, code, email string) error {
	if pg.IsDuplicateKeyError(err) {
		switch pg.ConstraintName(err) {
		case emailConstraint:
			return oops.Code("ACCOUNT_EMAIL_TAKEN").With("email", email).Wrap(auth.ErrEmailTaken)
		case nameConstraint:
			return oops.Code("ACCOUNT_NAME_TAKEN").With("email", email).Wrap(auth.ErrNameTaken)
		default:
			return oops.Code("ACCOUNT_CONFLICT").With("email", email).Wrap(auth.ErrConflict)
		}
	}
	return oops.Code(code).With("email", email).Wrap(err)
}

// scanAccount leaves pgx.ErrNoRows unwrapped for callers to translate.
func scanAccount(row pgx.Row) (auth.Account, error) {
	var acc auth.Account
	err := row.Scan(&acc.ID, &acc.Email, &acc.Name, &acc.PasswordHash, &acc.AvatarURL, &acc.Verified, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Account{}, err
		}
		return auth.Account{}, oops.Code("ACCOUNT_SCAN_FAILED").
			With("operation", "scan account").
			Wrap(err)
	}
	return acc, nil
}

var _ auth.AccountRepository = (*AccountRepository)(nil)
