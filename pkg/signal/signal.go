package signal

import (
	"fmt"

	"github.com/sprout-ui/sprout/pkg/executor"
)

// Status is the result of polling a Signal.
type Status int

const (
	// Pending means no new value is available; the waker has been registered.
	Pending Status = iota
	// Ready means the returned value is new.
	Ready
	// Done means the signal will never change again.
	Done
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Signal is a value that changes over time.
type Signal[T any] interface {
	PollChange(cx *executor.Context) (T, Status)
}

// Func adapts a function to the Signal interface.
type Func[T any] func(cx *executor.Context) (T, Status)

// PollChange calls f(cx).
func (f Func[T]) PollChange(cx *executor.Context) (T, Status) {
	return f(cx)
}

// Always returns a signal that yields v once and is then done.
func Always[T any](v T) Signal[T] {
	sent := false
	return Func[T](func(*executor.Context) (T, Status) {
		if sent {
			var zero T
			return zero, Done
		}
		sent = true
		return v, Ready
	})
}

// Map transforms every value of s with fn.
func Map[A, B any](s Signal[A], fn func(A) B) Signal[B] {
	return Func[B](func(cx *executor.Context) (B, Status) {
		v, st := s.PollChange(cx)
		if st != Ready {
			var zero B
			return zero, st
		}
		return fn(v), Ready
	})
}

// Dedupe drops values equal to the previously emitted one.
func Dedupe[T comparable](s Signal[T]) Signal[T] {
	return DedupeFunc(s, func(a, b T) bool { return a == b })
}

// DedupeFunc drops values for which eq reports equality with the previously
// emitted one.
func DedupeFunc[T any](s Signal[T], eq func(a, b T) bool) Signal[T] {
	var (
		last T
		has  bool
	)
	return Func[T](func(cx *executor.Context) (T, Status) {
		for {
			v, st := s.PollChange(cx)
			if st != Ready {
				return v, st
			}
			if has && eq(last, v) {
				continue
			}
			last, has = v, true
			return v, Ready
		}
	})
}

// ForEach returns a future that calls fn with every value of s. The future
// completes when s is done.
func ForEach[T any](s Signal[T], fn func(T)) executor.Future {
	return executor.FutureFunc(func(cx *executor.Context) executor.Poll {
		for {
			v, st := s.PollChange(cx)
			switch st {
			case Ready:
				fn(v)
			case Done:
				return executor.Ready
			default:
				return executor.Pending
			}
		}
	})
}
