package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/anihub/pkg/pg"
)

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	wrapped := fmt.Errorf("insert account: %w", unique)

	assert.True(t, pg.IsDuplicateKeyError(unique))
	assert.True(t, pg.IsDuplicateKeyError(wrapped))
	assert.False(t, pg.IsDuplicateKeyError(fk))
	assert.False(t, pg.IsDuplicateKeyError(nil))
	assert.False(t, pg.IsDuplicateKeyError(errors.New("boom")))

	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsForeignKeyViolationError(unique))

	assert.True(t, pg.IsNotFoundError(fmt.Errorf("find: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(nil))

	assert.Equal(t, "accounts_email_key", pg.ConstraintName(wrapped))
	assert.Empty(t, pg.ConstraintName(errors.New("boom")))
}
