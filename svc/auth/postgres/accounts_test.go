package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anihub/svc/auth"
)

var accountCols = []string{"id", "email", "name", "password_hash", "avatar_url", "verified", "created_at"}

func TestAccountRepository_FindByEmail(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      auth.Account
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM accounts WHERE email = \$1`).
					WithArgs("a@x.com").
					WillReturnRows(pgxmock.NewRows(accountCols).
						AddRow(id, "a@x.com", "alice", "$2a$10$hash", "", false, created))
			},
			want: auth.Account{
				ID:           id,
				Email:        "a@x.com",
				Name:         "alice",
				PasswordHash: "$2a$10$hash",
				CreatedAt:    created,
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM accounts WHERE email = \$1`).
					WithArgs("a@x.com").
					WillReturnRows(pgxmock.NewRows(accountCols))
			},
			wantErr: auth.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			got, err := NewAccountRepository(mock).FindByEmail(context.Background(), "a@x.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_FindByEmailOrName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`WHERE email = \$1 OR name = \$2`).
		WithArgs("a@x.com", "alice").
		WillReturnRows(pgxmock.NewRows(accountCols).
			AddRow(id, "b@x.com", "alice", "h", "", true, time.Now()))

	acc, err := NewAccountRepository(mock).FindByEmailOrName(context.Background(), "a@x.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, "b@x.com", acc.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create(t *testing.T) {
	acc := auth.Account{
		ID:           uuid.New(),
		Email:        "a@x.com",
		Name:         "alice",
		PasswordHash: "h",
		CreatedAt:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "ok"},
		{
			name:    "email taken",
			err:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"},
			wantErr: auth.ErrEmailTaken,
		},
		{
			name:    "name taken",
			err:     &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_name_key"},
			wantErr: auth.ErrNameTaken,
		},
		{
			name:    "other failure",
			err:     errors.New("connection refused"),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			q := mock.ExpectQuery(`INSERT INTO accounts`).
				WithArgs(acc.ID, acc.Email, acc.Name, acc.PasswordHash, acc.AvatarURL, false, acc.CreatedAt)
			if tt.err != nil {
				q.WillReturnError(tt.err)
			} else {
				q.WillReturnRows(pgxmock.NewRows(accountCols).
					AddRow(acc.ID, acc.Email, acc.Name, acc.PasswordHash, "", false, acc.CreatedAt))
			}

			got, err := NewAccountRepository(mock).Create(context.Background(), acc)
			switch {
			case tt.err == nil:
				require.NoError(t, err)
				assert.Equal(t, acc, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, auth.ErrConflict)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, auth.ErrConflict)
				assert.Contains(t, err.Error(), "connection refused")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_SetVerified(t *testing.T) {
	id := uuid.New()

	t.Run("updated", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE accounts SET verified = TRUE WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, NewAccountRepository(mock).SetVerified(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE accounts`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = NewAccountRepository(mock).SetVerified(context.Background(), id)
		assert.ErrorIs(t, err, auth.ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_UpsertOAuth(t *testing.T) {
	in := auth.OAuthAccount{Email: "g@x.com", Name: "Gina", AvatarURL: "https://example.com/g.png"}
	id := uuid.New()
	now := time.Now()

	t.Run("inserted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`(?s)INSERT INTO accounts .+ ON CONFLICT \(email\) DO NOTHING`).
			WithArgs(pgxmock.AnyArg(), in.Email, in.Name, in.AvatarURL).
			WillReturnRows(pgxmock.NewRows(accountCols).
				AddRow(id, in.Email, in.Name, "", in.AvatarURL, true, now))

		acc, err := NewAccountRepository(mock).UpsertOAuth(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, acc.Verified)
		assert.False(t, acc.HasPassword())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO accounts`).
			WithArgs(pgxmock.AnyArg(), in.Email, in.Name, in.AvatarURL).
			WillReturnRows(pgxmock.NewRows(accountCols))
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE email = \$1`).
			WithArgs(in.Email).
			WillReturnRows(pgxmock.NewRows(accountCols).
				AddRow(id, in.Email, "gina", "h", "", false, now))

		acc, err := NewAccountRepository(mock).UpsertOAuth(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, id, acc.ID)
		assert.Equal(t, "gina", acc.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name taken", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO accounts`).
			WithArgs(pgxmock.AnyArg(), in.Email, in.Name, in.AvatarURL).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_name_key"})

		_, err = NewAccountRepository(mock).UpsertOAuth(context.Background(), in)
		assert.ErrorIs(t, err, auth.ErrNameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
