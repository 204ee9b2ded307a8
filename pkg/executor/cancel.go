package executor

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"

	"github.com/sprout-ui/sprout/pkg/events"
)

type cancelState struct {
	canceled atomic.Bool
	task     *Task
}

func (s *cancelState) cancel() {
	if !s.canceled.CompareAndSwap(false, true) {
		return
	}
	capitan.Emit(context.Background(), events.TaskCanceled,
		events.KeyTaskID.Field(s.task.id.String()),
	)
	// The task observes the flag on its next poll and completes.
	s.task.Wake()
}

// cancelable resolves early once its state is canceled, without polling
// the inner future again.
type cancelable struct {
	inner Future
	state *cancelState
}

func (c *cancelable) Poll(cx *Context) Poll {
	if c.state.canceled.Load() {
		c.inner = nil
		return Ready
	}
	if c.inner.Poll(cx) == Ready {
		c.inner = nil
		return Ready
	}
	return Pending
}

// CancellationHandle controls a spawned task. Cancel plays the role of
// dropping the handle; a handle that is neither canceled nor leaked should
// be canceled by its owner when the work is no longer needed.
type CancellationHandle struct {
	state  *cancelState
	leaked atomic.Bool
}

// Cancel stops the task cooperatively. The wrapped future is never polled
// after Cancel returns. Cancel on a leaked handle is a no-op.
func (h *CancellationHandle) Cancel() {
	if h == nil || h.leaked.Load() {
		return
	}
	h.state.cancel()
}

// IsCanceled reports whether the task has been canceled.
func (h *CancellationHandle) IsCanceled() bool {
	return h.state.canceled.Load()
}

// Task returns the task controlled by this handle.
func (h *CancellationHandle) Task() *Task {
	return h.state.task
}

// Leak detaches the task's lifetime from h. The task keeps running until
// the returned Leaked is discarded.
func (h *CancellationHandle) Leak() *Leaked {
	h.leaked.Store(true)
	return &Leaked{state: h.state}
}

// Leaked is a detached cancellation handle.
type Leaked struct {
	state *cancelState
}

// Discard cancels the task. It is safe to call more than once.
func (l *Leaked) Discard() {
	if l == nil {
		return
	}
	l.state.cancel()
}

// IsDiscarded reports whether Discard has been called.
func (l *Leaked) IsDiscarded() bool {
	return l.state.canceled.Load()
}
