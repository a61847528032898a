// Package core defines the emulator core as consumed by the harness: an
// opaque value whose construction may fail. The harness never looks inside.
package core

import (
	"context"
	"errors"
)

// ErrAbnormalTermination reports a construction attempt that ended without a
// usable failure message, such as a crash of an out-of-process core.
var ErrAbnormalTermination = errors.New("core terminated abnormally")

// Core is a constructed emulator core.
type Core interface {
	Close() error
}

// Constructor builds a Core for the given ROM path. An empty path asks for a
// firmware boot.
type Constructor interface {
	New(ctx context.Context, romPath string) (Core, error)
}

// ConstructorFunc adapts a function to Constructor.
type ConstructorFunc func(ctx context.Context, romPath string) (Core, error)

// New calls f.
func (f ConstructorFunc) New(ctx context.Context, romPath string) (Core, error) {
	return f(ctx, romPath)
}

// ConstructionError carries the core's own description of a failure.
type ConstructionError struct {
	Message string
}

func (e *ConstructionError) Error() string {
	return e.Message
}
