package memoryseq

import (
	"context"
	"sync"

	"github.com/dogmatiq/sequencekit/sequence"
)

// Store is an in-memory implementation of [sequence.Store].
//
// The zero-value is ready for use. State is shared by all sequences opened
// with the same name from the same store, but is not durable across
// processes; it is intended for testing.
type Store struct {
	sequences sync.Map // map[string]*state
}

// Open returns the sequence with the given name.
func (s *Store) Open(ctx context.Context, name string, options ...sequence.Option) (sequence.Sequence, error) {
	st, ok := s.sequences.Load(name)

	if !ok {
		st, _ = s.sequences.LoadOrStore(
			name,
			&state{},
		)
	}

	return &seq{
		name:    name,
		options: sequence.ResolveOptions(options...),
		state:   st.(*state),
	}, ctx.Err()
}
