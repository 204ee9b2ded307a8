package signal

import (
	"sync"

	"github.com/sprout-ui/sprout/pkg/executor"
)

// Mutable holds a value and notifies its signals when it changes.
// It is safe for concurrent use.
type Mutable[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	closed  bool
	wakers  map[*mutableSignal[T]]*executor.Waker
}

// NewMutable returns a Mutable holding v.
func NewMutable[T any](v T) *Mutable[T] {
	return &Mutable[T]{value: v}
}

// Get returns the current value.
func (m *Mutable[T]) Get() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Set stores v and wakes every waiting signal.
func (m *Mutable[T]) Set(v T) {
	m.mu.Lock()
	m.value = v
	m.version++
	wakers := m.takeWakers()
	m.mu.Unlock()

	wakeAll(wakers)
}

// SetNeqFunc stores v only if eq reports it differs from the current value.
// It reports whether the value changed.
func (m *Mutable[T]) SetNeqFunc(v T, eq func(a, b T) bool) bool {
	m.mu.Lock()
	if eq(m.value, v) {
		m.mu.Unlock()
		return false
	}
	m.value = v
	m.version++
	wakers := m.takeWakers()
	m.mu.Unlock()

	wakeAll(wakers)
	return true
}

// SetNeq stores v in m unless it equals the current value.
func SetNeq[T comparable](m *Mutable[T], v T) bool {
	return m.SetNeqFunc(v, func(a, b T) bool { return a == b })
}

// Update replaces the value with fn(current).
func (m *Mutable[T]) Update(fn func(T) T) {
	m.mu.Lock()
	m.value = fn(m.value)
	m.version++
	wakers := m.takeWakers()
	m.mu.Unlock()

	wakeAll(wakers)
}

// Close marks the value final. Signals deliver any unseen value, then
// report Done.
func (m *Mutable[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	wakers := m.takeWakers()
	m.mu.Unlock()

	wakeAll(wakers)
}

// Signal returns a new signal over m. Each call returns an independent
// subscriber.
func (m *Mutable[T]) Signal() Signal[T] {
	return &mutableSignal[T]{m: m}
}

// ReadOnly returns a view of m without setters.
func (m *Mutable[T]) ReadOnly() *ReadOnly[T] {
	return &ReadOnly[T]{m: m}
}

func (m *Mutable[T]) takeWakers() []*executor.Waker {
	if len(m.wakers) == 0 {
		return nil
	}
	out := make([]*executor.Waker, 0, len(m.wakers))
	for _, w := range m.wakers {
		out = append(out, w)
	}
	clear(m.wakers)
	return out
}

func wakeAll(wakers []*executor.Waker) {
	for _, w := range wakers {
		w.Wake()
	}
}

type mutableSignal[T any] struct {
	m       *Mutable[T]
	seen    uint64
	started bool
}

func (s *mutableSignal[T]) PollChange(cx *executor.Context) (T, Status) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if !s.started || s.seen != m.version {
		s.started = true
		s.seen = m.version
		return m.value, Ready
	}
	var zero T
	if m.closed {
		delete(m.wakers, s)
		return zero, Done
	}
	if m.wakers == nil {
		m.wakers = make(map[*mutableSignal[T]]*executor.Waker)
	}
	m.wakers[s] = cx.Waker()
	return zero, Pending
}

// ReadOnly exposes the value and signals of a Mutable.
type ReadOnly[T any] struct {
	m *Mutable[T]
}

// Get returns the current value.
func (r *ReadOnly[T]) Get() T {
	return r.m.Get()
}

// Signal returns a new signal over the value.
func (r *ReadOnly[T]) Signal() Signal[T] {
	return r.m.Signal()
}
