// Package errors provides structured error handling for the Sprout runtime.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a platform node rejected a mutation.
	KindPlatform
	// KindQueueOverflow indicates the executor's ready queue is full.
	KindQueueOverflow
	// KindReentrancy indicates composer state was accessed while already taken.
	KindReentrancy
	// KindStaleCancellation indicates a task was polled after it completed.
	KindStaleCancellation
	// KindRender indicates a signal region failed to render.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindInit indicates an initialization error.
	KindInit
	// KindConfig indicates an invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindQueueOverflow:
		return "queue_overflow"
	case KindReentrancy:
		return "reentrancy"
	case KindStaleCancellation:
		return "stale_cancellation"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindInit:
		return "init"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this kind indicate a broken invariant
// rather than a runtime condition.
func (k ErrorKind) Fatal() bool {
	return k == KindQueueOverflow || k == KindReentrancy
}

// SproutError represents a structured error in the Sprout runtime.
type SproutError struct {
	// Op is the operation that failed (e.g., "compose.AddView").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// View describes the view involved, if applicable.
	View string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SproutError) Error() string {
	if e.View != "" {
		return fmt.Sprintf("%s [%s] view=%s: %v", e.Op, e.Kind, e.View, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SproutError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first SproutError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var se *SproutError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err carries a fatal kind.
func IsFatal(err error) bool {
	return KindOf(err).Fatal()
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "executor.poll").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// RenderError represents a failure while a signal region re-rendered.
type RenderError struct {
	// Region identifies the region that failed.
	Region string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in region %s: %v", e.Region, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in region %s: %v", e.Region, e.Err)
	}
	return fmt.Sprintf("unknown error in region %s", e.Region)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Sprout runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SproutError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleRenderError is called when a region render fails.
	HandleRenderError(err *RenderError)
}
