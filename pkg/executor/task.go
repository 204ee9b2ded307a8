package executor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sprout-ui/sprout/pkg/errors"
)

// TaskState tracks where a task is in its lifecycle.
type TaskState int32

const (
	// TaskPending means the task is queued or waiting for a wake.
	TaskPending TaskState = iota
	// TaskPolling means the task's future is being driven right now.
	TaskPolling
	// TaskCompleted means the future resolved and was dropped.
	TaskCompleted
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskPolling:
		return "polling"
	case TaskCompleted:
		return "completed"
	default:
		return fmt.Sprintf("TaskState(%d)", int32(s))
	}
}

// Task owns one future and the handle that puts it back on the ready queue.
type Task struct {
	id    uuid.UUID
	exec  *Executor
	waker *Waker

	mu     sync.Mutex
	future Future
	state  TaskState
	polls  int
}

func newTask(exec *Executor, f Future) *Task {
	t := &Task{
		id:     uuid.Must(uuid.NewV7()),
		exec:   exec,
		future: f,
	}
	t.waker = NewWaker(func() { exec.enqueue(t) })
	return t
}

// ID returns the task identifier.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// State returns the current lifecycle state.
func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Polls returns how many times the future has been polled.
func (t *Task) Polls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.polls
}

// Wake re-queues the task.
func (t *Task) Wake() {
	t.waker.Wake()
}

// poll drives the future once. It reports whether the future completed
// during this call. Polling a completed task is a no-op.
func (t *Task) poll() (completed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.future == nil {
		t.exec.logger.Debug("stale task poll ignored",
			"task", t.id.String(),
			"kind", errors.KindStaleCancellation.String())
		return false
	}

	t.state = TaskPolling
	t.polls++
	defer func() {
		if r := recover(); r != nil {
			t.future = nil
			t.state = TaskCompleted
			if e, ok := r.(error); ok && errors.IsFatal(e) {
				panic(r)
			}
			errors.ReportPanic(&errors.PanicError{
				Op:         "executor.poll",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
			completed = true
		}
	}()

	if t.future.Poll(&Context{waker: t.waker}) == Ready {
		t.future = nil
		t.state = TaskCompleted
		return true
	}
	t.state = TaskPending
	return false
}
