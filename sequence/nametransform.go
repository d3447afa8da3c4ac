package sequence

import "context"

// WithNameTransform returns a [Store] that uses x to transform the name of
// each sequence within s.
//
// [Sequence.Name] returns the untransformed name.
func WithNameTransform(
	s Store,
	x func(string) string,
) Store {
	return &nameTransformStore{s, x}
}

type nameTransformStore struct {
	Store
	transform func(string) string
}

func (s *nameTransformStore) Open(ctx context.Context, name string, options ...Option) (Sequence, error) {
	seq, err := s.Store.Open(ctx, s.transform(name), options...)
	if err != nil {
		return nil, err
	}

	return &nameTransformSequence{seq, name}, nil
}

type nameTransformSequence struct {
	Sequence
	name string
}

func (s *nameTransformSequence) Name() string {
	return s.name
}
