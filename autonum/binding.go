// Package autonum assigns sequential identifiers to the fields of newly
// created records, backed by a durable [sequence.Store].
//
// Each registered binding maps a logical (entity, field) pair to a named
// sequence with a configurable start value and increment step. Allocation is
// atomic with respect to concurrent callers, including callers in other
// processes sharing the same store.
package autonum

// DefaultField is the field an entity's binding targets when none is
// specified, conventionally the record's primary identifier.
const DefaultField = "id"

// Binding is the configuration that maps an (entity, field) pair to a
// sequence. It is immutable once registered.
type Binding struct {
	// Entity is the name of the entity (model) the binding belongs to.
	Entity string

	// Field is the name of the field that receives allocated values.
	Field string

	// StartAt is the first value the binding allocates.
	StartAt int64

	// IncrementBy is the amount by which each allocation advances the
	// counter. It is never zero.
	IncrementBy int64
}

// SequenceName returns the name of the durable sequence that backs the
// binding.
//
// It is deterministic and stable across process restarts, so that counter
// state persists correctly in the store.
func (b Binding) SequenceName() string {
	return b.Entity + "_" + b.Field
}

// BindingOption is a functional option that configures a binding at
// registration time.
type BindingOption func(*Binding)

// WithField is a [BindingOption] that sets the field that receives allocated
// values.
//
// The default is [DefaultField].
func WithField(f string) BindingOption {
	return func(b *Binding) {
		b.Field = f
	}
}

// WithStart is a [BindingOption] that sets the first value the binding
// allocates.
//
// The default is 0.
func WithStart(v int64) BindingOption {
	return func(b *Binding) {
		b.StartAt = v
	}
}

// WithStep is a [BindingOption] that sets the amount by which each allocation
// advances the counter.
//
// The default is 1. Registration fails with [InvalidConfigError] if it is
// zero.
func WithStep(v int64) BindingOption {
	return func(b *Binding) {
		b.IncrementBy = v
	}
}
