package autonum

import "context"

// Counter is a handle bound to a single registered (entity, field) pair.
//
// It exposes the per-record operations used by record-creation logic without
// requiring the caller to carry the entity and field names.
type Counter struct {
	registry *Registry
	entity   string
	field    string
}

// Counter returns a handle bound to the given (entity, field) pair.
//
// An empty field resolves to [DefaultField]. It fails with
// [UnknownBindingError] if no binding is registered for the pair.
func (r *Registry) Counter(entity, field string) (*Counter, error) {
	if field == "" {
		field = DefaultField
	}

	r.m.RLock()
	_, ok := r.bindings[bindingKey{entity, field}]
	r.m.RUnlock()

	if !ok {
		return nil, UnknownBindingError{
			Entity: entity,
			Field:  field,
		}
	}

	return &Counter{
		registry: r,
		entity:   entity,
		field:    field,
	}, nil
}

// Entity returns the name of the entity the counter is bound to.
func (c *Counter) Entity() string {
	return c.entity
}

// Field returns the name of the field the counter is bound to.
func (c *Counter) Field() string {
	return c.field
}

// Allocate atomically consumes and returns the next counter value.
func (c *Counter) Allocate(ctx context.Context) (int64, error) {
	return c.registry.Allocate(ctx, c.entity, c.field)
}

// NextCount returns the value the next call to Allocate() will return,
// without consuming it.
func (c *Counter) NextCount(ctx context.Context) (int64, error) {
	return c.registry.NextCount(ctx, c.entity, c.field)
}

// ResetCount rewinds the counter such that the next call to Allocate()
// returns the configured start value again.
func (c *Counter) ResetCount(ctx context.Context) (int64, error) {
	return c.registry.ResetCount(ctx, c.entity, c.field)
}
