package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes.
const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
)

// IsUniqueViolation reports whether err originates from a Postgres unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsNumericOutOfRange reports whether err is a Postgres numeric_value_out_of_range
// error, e.g. an INTEGER column overflowing in an UPDATE.
func IsNumericOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == numericOutOfRange
}
