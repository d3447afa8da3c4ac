package autonum

import (
	"errors"
	"fmt"
)

// IsInvalidConfig returns true if err is caused by [InvalidConfigError].
func IsInvalidConfig(err error) bool {
	var target interface {
		isInvalidConfigError()
	}

	return errors.As(err, &target)
}

// InvalidConfigError is returned by [Registry.Register] if a binding's
// configuration is unusable. It indicates a programming error; the caller
// must fix the configuration.
type InvalidConfigError struct {
	// Reason describes why the configuration was rejected.
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid binding configuration: %s", e.Reason)
}

func (InvalidConfigError) isInvalidConfigError() {}

// IsUnknownBinding returns true if err is caused by [UnknownBindingError].
func IsUnknownBinding(err error) bool {
	var target interface {
		isUnknownBindingError()
	}

	return errors.As(err, &target)
}

// UnknownBindingError is returned by counter operations that refer to an
// (entity, field) pair for which no binding has been registered.
type UnknownBindingError struct {
	// Entity is the name of the entity that was requested.
	Entity string

	// Field is the name of the field that was requested.
	Field string
}

func (e UnknownBindingError) Error() string {
	return fmt.Sprintf(
		"no binding is registered for the %q field of the %q entity",
		e.Field,
		e.Entity,
	)
}

func (UnknownBindingError) isUnknownBindingError() {}

// IsDuplicateBinding returns true if err is caused by
// [DuplicateBindingError].
func IsDuplicateBinding(err error) bool {
	var target interface {
		isDuplicateBindingError()
	}

	return errors.As(err, &target)
}

// DuplicateBindingError is returned by [Registry.Register] if a binding for
// the same (entity, field) pair is already registered with a different
// configuration.
//
// Registering an identical binding twice is a no-op, not an error.
type DuplicateBindingError struct {
	// Entity is the name of the entity the existing binding belongs to.
	Entity string

	// Field is the name of the field the existing binding targets.
	Field string
}

func (e DuplicateBindingError) Error() string {
	return fmt.Sprintf(
		"a binding is already registered for the %q field of the %q entity with a different configuration",
		e.Field,
		e.Entity,
	)
}

func (DuplicateBindingError) isDuplicateBindingError() {}
