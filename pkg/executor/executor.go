package executor

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/events"
)

// DefaultQueueCapacity is the ready queue size used when none is configured.
// A full queue means runaway task creation and aborts the process.
const DefaultQueueCapacity = 10_000

var (
	// ErrQueueFull is wrapped by the fatal error raised on queue overflow.
	ErrQueueFull = stderrors.New("executor: too many tasks queued")

	// ErrNotStaged is returned when no task is staged for polling.
	ErrNotStaged = stderrors.New("executor: no task staged")

	// ErrClosed is returned by blocking calls once the executor is closed.
	ErrClosed = stderrors.New("executor: closed")
)

// Executor polls tasks from a bounded ready queue, one at a time.
type Executor struct {
	queue    chan *Task
	capacity int
	logger   *slog.Logger

	// pollMu serializes polls across Run, RunUntilStalled and PollStagedTask.
	pollMu sync.Mutex

	stageMu sync.Mutex
	staged  *Task

	done      chan struct{}
	closeOnce sync.Once

	spawned   atomic.Int64
	completed atomic.Int64
}

// Option configures an Executor.
type Option func(*Executor)

// WithQueueCapacity sets the ready queue capacity.
func WithQueueCapacity(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithLogger sets the logger used for task diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		capacity: DefaultQueueCapacity,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.queue = make(chan *Task, e.capacity)
	return e
}

// Capacity returns the ready queue capacity.
func (e *Executor) Capacity() int {
	return e.capacity
}

// Pending returns the number of queued task handles.
func (e *Executor) Pending() int {
	return len(e.queue)
}

// Stats returns the number of spawned and completed tasks.
func (e *Executor) Stats() (spawned, completed int64) {
	return e.spawned.Load(), e.completed.Load()
}

// Spawner returns a spawner bound to this executor.
func (e *Executor) Spawner() *Spawner {
	return &Spawner{exec: e}
}

// Spawn is shorthand for e.Spawner().Spawn(f).
func (e *Executor) Spawn(f Future) *CancellationHandle {
	return e.Spawner().Spawn(f)
}

// Close stops the executor. Blocked Run and ReceiveNextReadyTask calls
// return ErrClosed, and wakes after Close are dropped. Close is idempotent.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.logger.Debug("executor closed", "pending", len(e.queue))
	})
}

// IsClosed reports whether Close was called.
func (e *Executor) IsClosed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// enqueue pushes a task handle onto the ready queue. A full queue is fatal.
func (e *Executor) enqueue(t *Task) {
	if e.IsClosed() {
		return
	}
	select {
	case e.queue <- t:
	default:
		capitan.Emit(context.Background(), events.QueueOverflow,
			events.KeyTaskID.Field(t.id.String()),
			events.KeyCapacity.Field(e.capacity),
		)
		errors.Fatal(&errors.SproutError{
			Op:   "executor.enqueue",
			Kind: errors.KindQueueOverflow,
			Err:  ErrQueueFull,
		})
	}
}

// pollTask polls t under the executor-wide poll lock.
func (e *Executor) pollTask(t *Task) {
	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	if t.poll() {
		e.completed.Add(1)
		e.logger.Debug("task completed", "task", t.id.String())
		capitan.Emit(context.Background(), events.TaskCompleted,
			events.KeyTaskID.Field(t.id.String()),
		)
	}
}

// Run polls tasks until ctx is done or the executor is closed. It returns
// ctx.Err() or ErrClosed.
func (e *Executor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return ErrClosed
		case t := <-e.queue:
			e.pollTask(t)
		}
	}
}

// RunUntilStalled polls queued tasks until the queue is empty and returns
// the number of polls performed.
func (e *Executor) RunUntilStalled() int {
	n := 0
	for {
		select {
		case t := <-e.queue:
			e.pollTask(t)
			n++
		default:
			return n
		}
	}
}

// ReceiveNextReadyTask blocks until a task is ready and stages it for
// PollStagedTask. If a task is already staged it returns immediately. It
// returns ErrClosed once the executor is closed.
func (e *Executor) ReceiveNextReadyTask(ctx context.Context) error {
	if e.IsClosed() {
		return ErrClosed
	}
	e.stageMu.Lock()
	staged := e.staged != nil
	e.stageMu.Unlock()
	if staged {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrClosed
	case t := <-e.queue:
		e.stageMu.Lock()
		e.staged = t
		e.stageMu.Unlock()
		return nil
	}
}

// PollStagedTask polls the staged task once. It reports whether a task was
// staged.
func (e *Executor) PollStagedTask() bool {
	e.stageMu.Lock()
	t := e.staged
	e.staged = nil
	e.stageMu.Unlock()

	if t == nil {
		return false
	}
	e.pollTask(t)
	return true
}
