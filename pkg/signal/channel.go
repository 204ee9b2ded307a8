package signal

import (
	"sync"

	"github.com/sprout-ui/sprout/pkg/executor"
)

// FromChannel returns a signal fed by ch. A goroutine started on the first
// poll drains ch; it exits once ch is closed, after which the signal
// delivers the last value and reports Done. Values sent faster than the
// subscriber polls are coalesced.
func FromChannel[T any](ch <-chan T) Signal[T] {
	return &chanSignal[T]{ch: ch}
}

type chanSignal[T any] struct {
	ch   <-chan T
	once sync.Once

	mu      sync.Mutex
	value   T
	version uint64
	seen    uint64
	closed  bool
	waker   *executor.Waker
}

func (s *chanSignal[T]) drain() {
	for v := range s.ch {
		s.mu.Lock()
		s.value = v
		s.version++
		w := s.waker
		s.waker = nil
		s.mu.Unlock()
		w.Wake()
	}
	s.mu.Lock()
	s.closed = true
	w := s.waker
	s.waker = nil
	s.mu.Unlock()
	w.Wake()
}

func (s *chanSignal[T]) PollChange(cx *executor.Context) (T, Status) {
	s.mu.Lock()
	if s.seen != s.version {
		s.seen = s.version
		v := s.value
		s.mu.Unlock()
		return v, Ready
	}
	var zero T
	if s.closed {
		s.mu.Unlock()
		return zero, Done
	}
	s.waker = cx.Waker()
	s.mu.Unlock()

	// Start after the waker is stored so the first value always wakes us.
	s.once.Do(func() { go s.drain() })
	return zero, Pending
}
