// Package sequence provides a durable, atomically-incrementable integer
// sequence abstraction with multiple storage drivers.
package sequence

import "context"

// A Sequence is a named, durable source of monotonically increasing integer
// values.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Uniqueness and ordering of allocated values across processes is guaranteed
// by the underlying store's atomic read-modify-write primitive, not by any
// in-process synchronization.
type Sequence interface {
	// Name returns the name of the sequence.
	Name() string

	// Next atomically allocates and returns the next value in the sequence.
	//
	// The first allocation returns the sequence's start value exactly; each
	// subsequent allocation returns the prior value advanced by the step.
	// Concurrent calls never observe the same value.
	Next(ctx context.Context) (int64, error)

	// Peek returns the value that the next call to Next() will return,
	// without allocating it.
	//
	// It is advisory only. It does not reserve the value; another caller may
	// allocate it before a subsequent call to Next().
	Peek(ctx context.Context) (int64, error)

	// Reset rewinds the sequence such that the next call to Next() returns
	// the sequence's start value again. It returns the start value.
	//
	// Reset is idempotent.
	Reset(ctx context.Context) (int64, error)

	// Close closes the sequence.
	Close() error
}
