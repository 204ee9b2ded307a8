package platform

import "errors"

// Sentinel errors for platform operations.
var (
	// ErrClosed is returned when operating on a disposed view or channel.
	ErrClosed = errors.New("platform: channel closed")

	// ErrNotConnected is returned when the platform bridge is not connected.
	ErrNotConnected = errors.New("platform: not connected")

	// ErrNotAttached is returned when a View refers to no node.
	ErrNotAttached = errors.New("platform: view not attached")

	// ErrIndexOutOfRange is returned for a child index outside the child list.
	ErrIndexOutOfRange = errors.New("platform: child index out of range")

	// ErrForeignView is returned when a child was created by a different
	// registry than its parent.
	ErrForeignView = errors.New("platform: view belongs to another registry")

	// ErrUnknownCallback is returned when native invokes a callback ID that
	// is not registered.
	ErrUnknownCallback = errors.New("platform: unknown callback")
)
