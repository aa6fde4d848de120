//go:build unit

package pgconv_test

import (
	"errors"
	"testing"
	"time"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	name, ok := pgconv.IsUniqueViolation(errs.Wrap(dup, "insert user"))
	assert.True(t, ok)
	assert.Equal(t, "users_email_key", name)

	_, ok = pgconv.IsUniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = pgconv.IsUniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsForeignKeyViolation(t *testing.T) {
	name, ok := pgconv.IsForeignKeyViolation(&pgconn.PgError{Code: "23503", ConstraintName: "items_owner_id_fkey"})
	assert.True(t, ok)
	assert.Equal(t, "items_owner_id_fkey", name)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, pgconv.IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, pgconv.IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, pgconv.IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pgconv.IsRetryable(errors.New("timeout")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errs.Wrap(pgx.ErrNoRows, "select")))
	assert.False(t, pgconv.IsNoRows(errors.New("other")))
}

func TestInt64Ptr(t *testing.T) {
	assert.Nil(t, pgconv.Int64PtrFromPgtype(pgtype.Int8{}))

	v := int64(7)
	pg := pgconv.Int64PtrToPgtype(&v)
	assert.True(t, pg.Valid)
	assert.Equal(t, int64(7), *pgconv.Int64PtrFromPgtype(pg))
	assert.False(t, pgconv.Int64PtrToPgtype(nil).Valid)
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, now, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(now)))
}
