package views

import (
	stderrors "errors"

	"github.com/sprout-ui/sprout/pkg/compose"
	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
)

// View kinds understood by every Factory.
const (
	KindText   = "text"
	KindButton = "button"
	KindStack  = "stack"
)

// ErrNoSpawner is returned when a signal prop is composed without a spawner.
var ErrNoSpawner = stderrors.New("views: signal prop needs a spawner")

// Factory creates native nodes. platform.Registry and the recording
// factory in pkg/testing both implement it.
type Factory interface {
	NewNode(kind string) (platform.Node, error)
}

// Composable is anything that can add itself to a composer.
type Composable interface {
	Compose(c *compose.Composer) error
}

// Compose adds items to c in order and stops at the first error.
func Compose(c *compose.Composer, items ...Composable) error {
	for _, it := range items {
		if err := it.Compose(c); err != nil {
			return err
		}
	}
	return nil
}

// builder carries a view through its configuration. The first error is
// kept and returned by Compose.
type builder struct {
	view     platform.View
	err      error
	bindings []func(*executor.Spawner) *executor.CancellationHandle
}

func newBuilder(f Factory, kind string, props []Prop) builder {
	var b builder
	n, err := f.NewNode(kind)
	if err != nil {
		b.err = &errors.SproutError{Op: "views.New", Kind: errors.KindPlatform, View: kind, Err: err}
		return b
	}
	b.view = platform.NewView(kind, n)
	b.apply(props)
	return b
}

func (b *builder) apply(props []Prop) {
	for _, p := range props {
		if b.err != nil {
			return
		}
		p(b)
	}
}

func (b *builder) set(name string, v platform.PropValue) {
	if b.err != nil {
		return
	}
	if err := b.view.UpdateProp(name, v); err != nil {
		b.err = &errors.SproutError{Op: "views.UpdateProp", Kind: errors.KindPlatform, View: b.view.Kind(), Err: err}
	}
}

// start spawns the signal bindings. Each one lives until the view is torn
// down.
func (b *builder) start(sp *executor.Spawner) error {
	if len(b.bindings) == 0 {
		return nil
	}
	if sp == nil {
		return &errors.SproutError{Op: "views.Compose", Kind: errors.KindInit, View: b.view.Kind(), Err: ErrNoSpawner}
	}
	for _, bind := range b.bindings {
		leaked := bind(sp).Leak()
		b.view.OnTeardown(leaked.Discard)
	}
	b.bindings = nil
	return nil
}

func (b *builder) compose(c *compose.Composer) error {
	if b.err != nil {
		return b.err
	}
	if err := c.AddView(b.view); err != nil {
		return err
	}
	return b.attached(c)
}

// attached starts the bindings once the view is in the tree. A composer
// without a parent dropped the view, so nothing is spawned.
func (b *builder) attached(c *compose.Composer) error {
	if c.Parent().IsZero() {
		b.bindings = nil
		return nil
	}
	return b.start(c.Spawner())
}

// View returns the underlying view handle. It is zero if creation failed.
func (b *builder) View() platform.View {
	return b.view
}

// Err returns the first configuration error.
func (b *builder) Err() error {
	return b.err
}
