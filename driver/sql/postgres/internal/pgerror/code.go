package pgerror

import (
	"errors"
	"slices"

	"github.com/jackc/pgconn"
)

// https://www.postgresql.org/docs/11/errcodes-appendix.html
const (
	// CodeUndefinedTable is the PostgreSQL error code for "undefined_table".
	CodeUndefinedTable = "42P01"
)

// Is returns true if err is a PostgreSQL error with one of the given codes.
func Is(err error, codes ...string) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && slices.Contains(codes, e.Code)
}

// IsServerError returns true if err is an error reported by the PostgreSQL
// server, as opposed to a network-level failure to communicate with it.
func IsServerError(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e)
}
