// Package host exposes the executor to a runtime that owns the main loop.
//
// The host calls Setup once, keeps the returned Handle, and then alternates
// ReceiveNextReadyTask, which blocks until a task is ready, with
// PollStagedTask, which polls it. Between the two calls the host is free to
// run its own work.
package host

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
)

// Handle is an opaque reference to a host-stepped executor.
type Handle uint64

// ErrUnknownHandle is returned for a handle that was never set up or has
// been released.
var ErrUnknownHandle = stderrors.New("host: unknown handle")

var (
	mu         sync.RWMutex
	executors  = map[Handle]*executor.Executor{}
	nextHandle atomic.Uint64

	// dispatchOwner is the handle whose spawner is installed as the
	// platform dispatch function.
	dispatchOwner Handle
)

// Setup creates an executor, registers it and installs its spawner as the
// platform dispatch function, so native callbacks run as tasks.
func Setup(opts ...executor.Option) Handle {
	exec := executor.New(opts...)
	h := Handle(nextHandle.Add(1))

	mu.Lock()
	executors[h] = exec
	dispatchOwner = h
	mu.Unlock()

	platform.RegisterDispatch(exec.Spawner().Dispatch)
	return h
}

func lookup(h Handle) (*executor.Executor, error) {
	mu.RLock()
	exec, ok := executors[h]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return exec, nil
}

// ReceiveNextReadyTask blocks until a task is ready and stages it.
func ReceiveNextReadyTask(h Handle) error {
	return ReceiveNextReadyTaskContext(context.Background(), h)
}

// ReceiveNextReadyTaskContext is ReceiveNextReadyTask with cancellation.
func ReceiveNextReadyTaskContext(ctx context.Context, h Handle) error {
	exec, err := lookup(h)
	if err != nil {
		return err
	}
	return exec.ReceiveNextReadyTask(ctx)
}

// PollStagedTask polls the staged task once. It reports whether a task was
// polled; an unknown handle polls nothing.
func PollStagedTask(h Handle) bool {
	exec, err := lookup(h)
	if err != nil {
		return false
	}
	return exec.PollStagedTask()
}

// Spawner returns the spawner of the executor behind h.
func Spawner(h Handle) (*executor.Spawner, error) {
	exec, err := lookup(h)
	if err != nil {
		return nil, err
	}
	return exec.Spawner(), nil
}

// Release closes and forgets h. A ReceiveNextReadyTask blocked on h returns
// executor.ErrClosed and queued tasks are dropped. If h owns the platform
// dispatch function it is cleared.
func Release(h Handle) error {
	mu.Lock()
	exec, ok := executors[h]
	delete(executors, h)
	owner := dispatchOwner == h
	if owner {
		dispatchOwner = 0
	}
	mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	exec.Close()
	if owner {
		platform.RegisterDispatch(nil)
	}
	return nil
}
