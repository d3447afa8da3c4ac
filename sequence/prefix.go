package sequence

import "context"

// WithNamePrefix returns a [Store] that adds the given prefix to all sequence
// names.
//
// [Sequence.Name] returns the unprefixed name.
func WithNamePrefix(store Store, prefix string) Store {
	return prefixedStore{store, prefix}
}

// prefixedStore is a [Store] that adds a prefix to all sequence names.
type prefixedStore struct {
	Store
	prefix string
}

func (s prefixedStore) Open(ctx context.Context, name string, options ...Option) (Sequence, error) {
	seq, err := s.Store.Open(ctx, s.prefix+name, options...)
	if err != nil {
		return nil, err
	}

	return prefixedSequence{seq, name}, nil
}

// prefixedSequence is a [Sequence] opened by a [prefixedStore].
type prefixedSequence struct {
	Sequence
	name string
}

func (s prefixedSequence) Name() string {
	return s.name
}
