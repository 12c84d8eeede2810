package texstack

import (
	"errors"
	"fmt"
)

// Common errors returned by stack operations.
var (
	// ErrTypeMismatch is returned when an item's type is not accepted by
	// the stack's layer source.
	ErrTypeMismatch = errors.New("texstack: item type not accepted by source")

	// ErrNilTexture is returned when an item resolves to a nil texture.
	ErrNilTexture = errors.New("texstack: nil texture")

	// ErrNilCanvas is returned when attaching a stack to a nil canvas.
	ErrNilCanvas = errors.New("texstack: nil canvas")

	// ErrAttached is returned when attaching a stack that is already
	// attached. Detach first.
	ErrAttached = errors.New("texstack: stack already attached")

	// ErrNotAttached is returned when detaching a stack that is not
	// attached.
	ErrNotAttached = errors.New("texstack: stack not attached")

	// ErrIndexOutOfRange is the sentinel matched by errors.Is for layer
	// index errors. The concrete error is always an *IndexError.
	ErrIndexOutOfRange = errors.New("texstack: layer index out of range")
)

// IndexError reports a layer index outside the valid range.
// It unwraps to ErrIndexOutOfRange.
type IndexError struct {
	// Index is the requested index, as passed by the caller.
	Index int

	// Len is the number of layers at the time of the call.
	Len int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("texstack: index %d out of range with %d layers", e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange so errors.Is matches the sentinel.
func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ResourceNotFoundError reports an item path that could not be resolved
// to a readable file.
type ResourceNotFoundError struct {
	// Path is the path as passed to the stack.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("texstack: resource %q not found", e.Path)
}

// Unwrap returns the underlying cause.
func (e *ResourceNotFoundError) Unwrap() error { return e.Err }
