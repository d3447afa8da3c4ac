package sequence

import "context"

// Store is a collection of named sequences.
type Store interface {
	// Open returns the sequence with the given name.
	//
	// The start and step options take effect when the sequence's durable
	// state is first created (or re-created by [Sequence.Reset]); opening an
	// existing sequence with different options does not rewrite its state.
	Open(ctx context.Context, name string, options ...Option) (Sequence, error)
}

// Option is a functional option that configures a sequence when it is opened.
type Option func(*Options)

// Options is the resolved set of per-sequence options.
//
// It is exported for use by driver implementations; application code should
// use [WithStart] and [WithStep] instead.
type Options struct {
	// Start is the first value the sequence allocates.
	Start int64

	// Step is the amount by which each allocation advances the sequence.
	Step int64
}

// WithStart is an [Option] that sets the first value the sequence allocates.
//
// The default is 0.
func WithStart(v int64) Option {
	return func(o *Options) {
		o.Start = v
	}
}

// WithStep is an [Option] that sets the amount by which each allocation
// advances the sequence.
//
// The default is 1. It panics if v is zero.
func WithStep(v int64) Option {
	if v == 0 {
		panic("sequence step must not be zero")
	}

	return func(o *Options) {
		o.Step = v
	}
}

// ResolveOptions applies the given options to a default [Options] value.
//
// It is intended for use by driver implementations.
func ResolveOptions(options ...Option) Options {
	opts := Options{
		Start: 0,
		Step:  1,
	}

	for _, opt := range options {
		opt(&opts)
	}

	return opts
}
