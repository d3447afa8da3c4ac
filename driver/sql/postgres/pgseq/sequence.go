package pgseq

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dogmatiq/sequencekit/driver/sql/postgres/internal/pgerror"
	"github.com/dogmatiq/sequencekit/sequence"
)

type seq struct {
	name    string
	options sequence.Options
	db      *sql.DB
}

func (s *seq) Name() string {
	return s.name
}

func (s *seq) Next(ctx context.Context) (int64, error) {
	// The stored value is the value the next allocation returns. Creation and
	// allocation are a single atomic statement: on insert the row is created
	// already advanced past the start value, on conflict the stored value is
	// advanced by the step. Either way the pre-advance value is returned.
	row := s.db.QueryRowContext(
		ctx,
		`INSERT INTO sequencekit.sequence AS s (
			name,
			value
		) VALUES (
			$1, $2 + $3
		) ON CONFLICT (name) DO UPDATE SET
			value = s.value + $3
		RETURNING value - $3`,
		s.name,
		s.options.Start,
		s.options.Step,
	)

	var v int64
	if err := row.Scan(&v); err != nil {
		return 0, s.fail("allocate next value", err)
	}

	return v, nil
}

func (s *seq) Peek(ctx context.Context) (int64, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT value
		FROM sequencekit.sequence
		WHERE name = $1`,
		s.name,
	)

	var v int64
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return s.options.Start, nil
		}
		return 0, s.fail("peek at next value", err)
	}

	return v, nil
}

func (s *seq) Reset(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sequencekit.sequence AS s (
			name,
			value
		) VALUES (
			$1, $2
		) ON CONFLICT (name) DO UPDATE SET
			value = excluded.value`,
		s.name,
		s.options.Start,
	); err != nil {
		return 0, s.fail("reset sequence", err)
	}

	return s.options.Start, nil
}

func (s *seq) Close() error {
	return nil
}

// fail classifies an error from the database.
//
// Errors reported by the server itself are wrapped with context; anything
// else is a failure to communicate with the server and is surfaced as a
// [sequence.UnavailableError].
func (s *seq) fail(op string, err error) error {
	if pgerror.Is(err, pgerror.CodeUndefinedTable) {
		return fmt.Errorf("cannot %s: schema has not been created: %w", op, err)
	}

	if pgerror.IsServerError(err) {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	return sequence.UnavailableError{
		Sequence: s.name,
		Cause:    err,
	}
}
