package executor

import (
	"context"

	"github.com/zoobzio/capitan"

	"github.com/sprout-ui/sprout/pkg/events"
)

// Spawner puts new futures on an executor. It is cheap to copy and safe to
// use from any goroutine.
type Spawner struct {
	exec *Executor
}

// Spawn wraps f in a cancelable task and queues it for its first poll.
func (s *Spawner) Spawn(f Future) *CancellationHandle {
	state := &cancelState{}
	t := newTask(s.exec, &cancelable{inner: f, state: state})
	state.task = t

	s.exec.spawned.Add(1)
	s.exec.logger.Debug("task spawned", "task", t.id.String())
	capitan.Emit(context.Background(), events.TaskSpawned,
		events.KeyTaskID.Field(t.id.String()),
	)

	s.exec.enqueue(t)
	return &CancellationHandle{state: state}
}

// Dispatch runs fn on the executor as a one-shot task. Its signature matches
// platform.RegisterDispatch.
func (s *Spawner) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	s.Spawn(FutureFunc(func(*Context) Poll {
		fn()
		return Ready
	})).Leak()
}

// Executor returns the executor this spawner feeds.
func (s *Spawner) Executor() *Executor {
	return s.exec
}
