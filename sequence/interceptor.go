package sequence

import (
	"context"
	"sync/atomic"
)

// Interceptor defines functions that are invoked around sequence operations.
type Interceptor struct {
	beforeOpen  atomic.Pointer[func(string) error]
	beforeNext  atomic.Pointer[func(string) error]
	afterNext   atomic.Pointer[func(string, int64) error]
	beforeReset atomic.Pointer[func(string) error]
}

// BeforeOpen sets the function that is invoked before a [Sequence] is opened.
func (i *Interceptor) BeforeOpen(fn func(name string) error) {
	store(&i.beforeOpen, fn)
}

// BeforeNext sets the function that is invoked before a value is allocated.
func (i *Interceptor) BeforeNext(fn func(name string) error) {
	store(&i.beforeNext, fn)
}

// AfterNext sets the function that is invoked after a value is allocated.
func (i *Interceptor) AfterNext(fn func(name string, v int64) error) {
	store(&i.afterNext, fn)
}

// BeforeReset sets the function that is invoked before a sequence is reset.
func (i *Interceptor) BeforeReset(fn func(name string) error) {
	store(&i.beforeReset, fn)
}

// WithInterceptor returns a [Store] that invokes the functions defined by the
// given [Interceptor] when performing operations on s.
func WithInterceptor(s Store, in *Interceptor) Store {
	if in == nil {
		return s
	}

	return &interceptedStore{
		Next:        s,
		Interceptor: in,
	}
}

func store[F any](dst *atomic.Pointer[F], fn F) {
	dst.Store(&fn)
}

func load[F any](src *atomic.Pointer[F]) F {
	if fn := src.Load(); fn != nil {
		return *fn
	}

	var zero F
	return zero
}

type interceptedStore struct {
	Next        Store
	Interceptor *Interceptor
}

func (s *interceptedStore) Open(ctx context.Context, name string, options ...Option) (Sequence, error) {
	if fn := load(&s.Interceptor.beforeOpen); fn != nil {
		if err := fn(name); err != nil {
			return nil, err
		}
	}

	next, err := s.Next.Open(ctx, name, options...)
	if err != nil {
		return nil, err
	}

	return &interceptedSequence{
		next:        next,
		interceptor: s.Interceptor,
	}, nil
}

type interceptedSequence struct {
	next        Sequence
	interceptor *Interceptor
}

func (s *interceptedSequence) Name() string {
	return s.next.Name()
}

func (s *interceptedSequence) Next(ctx context.Context) (int64, error) {
	if fn := load(&s.interceptor.beforeNext); fn != nil {
		if err := fn(s.next.Name()); err != nil {
			return 0, err
		}
	}

	v, err := s.next.Next(ctx)
	if err != nil {
		return 0, err
	}

	if fn := load(&s.interceptor.afterNext); fn != nil {
		if err := fn(s.next.Name(), v); err != nil {
			return 0, err
		}
	}

	return v, nil
}

func (s *interceptedSequence) Peek(ctx context.Context) (int64, error) {
	return s.next.Peek(ctx)
}

func (s *interceptedSequence) Reset(ctx context.Context) (int64, error) {
	if fn := load(&s.interceptor.beforeReset); fn != nil {
		if err := fn(s.next.Name()); err != nil {
			return 0, err
		}
	}

	return s.next.Reset(ctx)
}

func (s *interceptedSequence) Close() error {
	return s.next.Close()
}
