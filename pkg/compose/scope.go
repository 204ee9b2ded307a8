package compose

import "github.com/sprout-ui/sprout/pkg/platform"

// Scope composes the children of a container view. The container is added
// to the outer composer only when Finish is called.
type Scope struct {
	outer     *Composer
	inner     *Composer
	container platform.View
	finished  bool
}

// Begin starts a scope whose children are appended to container.
func (c *Composer) Begin(container platform.View) *Scope {
	return &Scope{
		outer:     c,
		inner:     c.child(container),
		container: container,
	}
}

// Composer returns the composer for the container's children.
func (s *Scope) Composer() *Composer {
	return s.inner
}

// Finish adds the container to the outer composer. Calls after the first
// do nothing.
func (s *Scope) Finish() error {
	if s.finished {
		return nil
	}
	s.finished = true
	return s.outer.AddView(s.container)
}

// With composes container's children with fn and then adds container to c.
// If fn fails the container is torn down and not added.
func (c *Composer) With(container platform.View, fn func(*Composer) error) error {
	s := c.Begin(container)
	if err := fn(s.Composer()); err != nil {
		container.Teardown()
		return err
	}
	if err := s.Finish(); err != nil {
		container.Teardown()
		return err
	}
	return nil
}
