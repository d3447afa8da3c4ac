package pgseq

import (
	"context"
	"database/sql"

	"github.com/dogmatiq/sequencekit/sequence"
)

// Store is an implementation of [sequence.Store] that persists sequences in a
// PostgreSQL database.
//
// The database schema must be created with [CreateSchema] before use.
type Store struct {
	DB *sql.DB
}

// Open returns the sequence with the given name.
func (s *Store) Open(_ context.Context, name string, options ...sequence.Option) (sequence.Sequence, error) {
	return &seq{
		name:    name,
		options: sequence.ResolveOptions(options...),
		db:      s.DB,
	}, nil
}
