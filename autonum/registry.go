package autonum

import (
	"context"
	"errors"
	"sync"

	"github.com/dogmatiq/sequencekit/internal/syncx"
	"github.com/dogmatiq/sequencekit/sequence"
)

// Registry maps (entity, field) pairs to durable counters.
//
// The zero-value is not ready for use; the Store field must be populated.
// Methods are safe for concurrent use.
type Registry struct {
	// Store is the store in which counter state is persisted.
	Store sequence.Store

	m        sync.RWMutex
	bindings map[bindingKey]*registeredBinding
}

type bindingKey struct {
	entity string
	field  string
}

// registeredBinding is a [Binding] together with its lazily-opened sequence.
type registeredBinding struct {
	config   Binding
	openOnce syncx.SucceedOnce
	seq      sequence.Sequence
}

// Register adds a binding for the given entity.
//
// By default the binding targets [DefaultField], starts at 0 and increments
// by 1; use [WithField], [WithStart] and [WithStep] to override.
//
// It fails with [InvalidConfigError] if entity is empty or the step is zero.
// Registering an identical binding twice is a no-op; registering a binding
// for an already-bound (entity, field) pair with a different configuration
// fails with [DuplicateBindingError].
func (r *Registry) Register(entity string, options ...BindingOption) error {
	b := Binding{
		Entity:      entity,
		Field:       DefaultField,
		StartAt:     0,
		IncrementBy: 1,
	}

	for _, opt := range options {
		opt(&b)
	}

	if b.Entity == "" {
		return InvalidConfigError{Reason: "entity name must not be empty"}
	}

	if b.Field == "" {
		return InvalidConfigError{Reason: "field name must not be empty"}
	}

	if b.IncrementBy == 0 {
		return InvalidConfigError{Reason: "increment step must not be zero"}
	}

	k := bindingKey{b.Entity, b.Field}

	r.m.Lock()
	defer r.m.Unlock()

	if existing, ok := r.bindings[k]; ok {
		if existing.config == b {
			return nil
		}

		return DuplicateBindingError{
			Entity: b.Entity,
			Field:  b.Field,
		}
	}

	if r.bindings == nil {
		r.bindings = map[bindingKey]*registeredBinding{}
	}

	r.bindings[k] = &registeredBinding{config: b}

	return nil
}

// Allocate atomically consumes and returns the next counter value for the
// given (entity, field) pair.
//
// The returned value is the one to assign to the record's field before it is
// persisted. The counter is advanced permanently, even if the caller never
// persists the record.
//
// It fails with [UnknownBindingError] if no binding is registered for the
// pair, or [sequence.UnavailableError] if the store cannot be reached, in
// which case the caller must abort the dependent record creation rather than
// assign a fallback value.
func (r *Registry) Allocate(ctx context.Context, entity, field string) (int64, error) {
	seq, err := r.sequenceFor(ctx, entity, field)
	if err != nil {
		return 0, err
	}

	return seq.Next(ctx)
}

// NextCount returns the value that the next call to Allocate() for the given
// (entity, field) pair will return, without consuming it.
//
// It has no side effect and is advisory only: another caller may consume the
// previewed value first.
func (r *Registry) NextCount(ctx context.Context, entity, field string) (int64, error) {
	seq, err := r.sequenceFor(ctx, entity, field)
	if err != nil {
		return 0, err
	}

	return seq.Peek(ctx)
}

// ResetCount rewinds the counter for the given (entity, field) pair such
// that the next call to Allocate() returns the binding's configured start
// value again. It returns the start value.
func (r *Registry) ResetCount(ctx context.Context, entity, field string) (int64, error) {
	seq, err := r.sequenceFor(ctx, entity, field)
	if err != nil {
		return 0, err
	}

	return seq.Reset(ctx)
}

// Close closes any sequences that have been opened by the registry.
func (r *Registry) Close() error {
	r.m.Lock()
	defer r.m.Unlock()

	var errs []error

	for _, b := range r.bindings {
		if b.seq != nil {
			if err := b.seq.Close(); err != nil {
				errs = append(errs, err)
			}
			b.seq = nil
		}
	}

	return errors.Join(errs...)
}

// sequenceFor resolves the binding for the given (entity, field) pair and
// returns its sequence, opening it on first use.
//
// An empty field resolves to [DefaultField].
func (r *Registry) sequenceFor(ctx context.Context, entity, field string) (sequence.Sequence, error) {
	if field == "" {
		field = DefaultField
	}

	r.m.RLock()
	b, ok := r.bindings[bindingKey{entity, field}]
	r.m.RUnlock()

	if !ok {
		return nil, UnknownBindingError{
			Entity: entity,
			Field:  field,
		}
	}

	if err := b.openOnce.Do(ctx, func(ctx context.Context) error {
		seq, err := r.Store.Open(
			ctx,
			b.config.SequenceName(),
			sequence.WithStart(b.config.StartAt),
			sequence.WithStep(b.config.IncrementBy),
		)
		if err != nil {
			return err
		}

		b.seq = seq
		return nil
	}); err != nil {
		return nil, err
	}

	return b.seq, nil
}
