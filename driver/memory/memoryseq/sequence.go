package memoryseq

import (
	"context"
	"errors"
	"sync"

	"github.com/dogmatiq/sequencekit/sequence"
)

// state is the in-memory state of a sequence.
//
// value holds the value that the next allocation returns; it is meaningful
// only when exists is true.
type state struct {
	sync.Mutex
	value  int64
	exists bool
}

// seq is an implementation of [sequence.Sequence] that manipulates a
// sequence's in-memory [state].
type seq struct {
	name    string
	options sequence.Options
	state   *state
}

func (s *seq) Name() string {
	return s.name
}

func (s *seq) Next(ctx context.Context) (int64, error) {
	if s.state == nil {
		panic("sequence is closed")
	}

	s.state.Lock()
	defer s.state.Unlock()

	if !s.state.exists {
		s.state.value = s.options.Start
		s.state.exists = true
	}

	v := s.state.value
	s.state.value += s.options.Step

	return v, ctx.Err()
}

func (s *seq) Peek(ctx context.Context) (int64, error) {
	if s.state == nil {
		panic("sequence is closed")
	}

	s.state.Lock()
	defer s.state.Unlock()

	if !s.state.exists {
		return s.options.Start, ctx.Err()
	}

	return s.state.value, ctx.Err()
}

func (s *seq) Reset(ctx context.Context) (int64, error) {
	if s.state == nil {
		panic("sequence is closed")
	}

	s.state.Lock()
	defer s.state.Unlock()

	s.state.value = s.options.Start
	s.state.exists = true

	return s.options.Start, ctx.Err()
}

func (s *seq) Close() error {
	if s.state == nil {
		return errors.New("sequence is already closed")
	}

	s.state = nil

	return nil
}
