package views

import (
	"github.com/sprout-ui/sprout/pkg/compose"
)

// Stack lays out its children along one axis.
type Stack struct {
	builder
}

// NewStack creates an empty stack.
func NewStack(f Factory, props ...Prop) *Stack {
	return &Stack{builder: newBuilder(f, KindStack, props)}
}

// With composes the stack's children with fn and then adds the stack to c.
func (s *Stack) With(c *compose.Composer, fn func(c *compose.Composer) error) error {
	if s.err != nil {
		return s.err
	}
	if err := c.With(s.view, fn); err != nil {
		return err
	}
	return s.attached(c)
}

// Compose adds the stack to c without children.
func (s *Stack) Compose(c *compose.Composer) error {
	return s.compose(c)
}
