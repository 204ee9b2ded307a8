package executor

// Poll is the result of polling a Future.
type Poll int

const (
	// Pending means the future cannot make progress until its waker fires.
	Pending Poll = iota
	// Ready means the future has completed.
	Ready
)

func (p Poll) String() string {
	if p == Ready {
		return "ready"
	}
	return "pending"
}

// Future is a unit of cooperative work.
//
// Poll must not block. When returning Pending, the future must arrange for
// cx.Waker() to be woken once progress is possible.
type Future interface {
	Poll(cx *Context) Poll
}

// FutureFunc adapts a function to the Future interface.
type FutureFunc func(cx *Context) Poll

// Poll calls f(cx).
func (f FutureFunc) Poll(cx *Context) Poll {
	return f(cx)
}

// Context carries the waker of the task being polled.
type Context struct {
	waker *Waker
}

// NewContext returns a Context bound to w. Useful for polling futures
// outside an executor, for example in tests.
func NewContext(w *Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the waker of the current task.
func (c *Context) Waker() *Waker {
	return c.waker
}

// Waker re-schedules a task. It is safe to call from any goroutine and to
// call more than once.
type Waker struct {
	wake func()
}

// NewWaker returns a waker that calls fn when woken.
func NewWaker(fn func()) *Waker {
	return &Waker{wake: fn}
}

// Wake schedules the owning task to be polled again.
func (w *Waker) Wake() {
	if w == nil || w.wake == nil {
		return
	}
	w.wake()
}

// ReadyFuture returns a future that completes on its first poll.
func ReadyFuture() Future {
	return FutureFunc(func(*Context) Poll { return Ready })
}
