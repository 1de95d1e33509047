package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntity is returned when a handle is stale, destroyed, or was never issued.
	ErrInvalidEntity = errors.New("ecs: invalid entity")
	// ErrMissingComponent is returned when an entity lacks the requested component.
	ErrMissingComponent = errors.New("ecs: missing component")
	// ErrUndeclaredComponent is returned when a component type has no pool.
	ErrUndeclaredComponent = errors.New("ecs: undeclared component type")
)

func invalid(e Entity) error {
	return fmt.Errorf("%w: index %d generation %d", ErrInvalidEntity, e.Index(), e.Generation())
}
