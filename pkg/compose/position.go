package compose

import (
	"slices"
	"strconv"
	"strings"
)

// counter is one frame of a PositionContext. Changes propagate to up, the
// total of the enclosing region, if any.
type counter struct {
	n  int
	up *counter
}

func (c *counter) add(d int) {
	for ; c != nil; c = c.up {
		c.n += d
	}
}

// PositionContext is a stack of shared counters. CurrentIndex is the sum
// of all frames.
type PositionContext struct {
	frames []*counter
}

// NewPositionContext returns a context with a single zero frame.
func NewPositionContext() *PositionContext {
	return &PositionContext{frames: []*counter{{}}}
}

// CurrentIndex returns the absolute sibling index at this position.
func (p *PositionContext) CurrentIndex() int {
	sum := 0
	for _, f := range p.frames {
		sum += f.n
	}
	return sum
}

// Depth returns the number of frames.
func (p *PositionContext) Depth() int {
	return len(p.frames)
}

// Clone returns a context with its own frame stack over the same counters.
func (p *PositionContext) Clone() *PositionContext {
	return &PositionContext{frames: slices.Clone(p.frames)}
}

// PushFrame starts a new scope at the current position.
func (p *PositionContext) PushFrame() {
	p.push(&counter{up: p.top().up})
}

// Increment counts one view in the active scope.
func (p *PositionContext) Increment() {
	p.top().add(1)
}

// Decrement uncounts one view from the active scope. It fails with
// ErrIndexUnderflow when the active scope is empty.
func (p *PositionContext) Decrement() error {
	top := p.top()
	if top.n == 0 {
		return ErrIndexUnderflow
	}
	top.add(-1)
	return nil
}

func (p *PositionContext) String() string {
	parts := make([]string, len(p.frames))
	for i, f := range p.frames {
		parts[i] = strconv.Itoa(f.n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (p *PositionContext) top() *counter {
	return p.frames[len(p.frames)-1]
}

func (p *PositionContext) push(c *counter) {
	p.frames = append(p.frames, c)
}

// decrementFrom uncounts one view from the topmost non-zero frame at or
// above base.
func (p *PositionContext) decrementFrom(base int) error {
	for i := len(p.frames) - 1; i >= base; i-- {
		if p.frames[i].n > 0 {
			p.frames[i].add(-1)
			return nil
		}
	}
	return ErrIndexUnderflow
}

func (p *PositionContext) truncate(depth int) {
	if depth < len(p.frames) {
		clear(p.frames[depth:])
		p.frames = p.frames[:depth]
	}
}
