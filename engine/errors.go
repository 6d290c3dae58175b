package engine

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyPlaced = errors.New("sprite already placed")
	ErrNotPlaced     = errors.New("sprite not placed")
	ErrZombie        = errors.New("sprite is a zombie")
	ErrNoSurface     = errors.New("sprite has no surface")
	ErrZeroVelocity  = errors.New("zero velocity on both axes")
	ErrNotMember     = errors.New("sprite is not a group member")
	ErrForeignScene  = errors.New("sprite belongs to another scene")
	ErrFrozen        = errors.New("group is frozen")
	ErrStillVirtual  = errors.New("sprite still virtual at render")
)

// MisuseError reports a lifecycle violation. It is raised with panic from
// per-tick calls where an error return would be ignored anyway
type MisuseError struct {
	Op  string
	Err error
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("engine: %s: %v", e.Op, e.Err)
}

func (e *MisuseError) Unwrap() error { return e.Err }

func misuse(op string, err error) {
	panic(&MisuseError{Op: op, Err: err})
}
