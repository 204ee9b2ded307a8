package compose

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
	sproutest "github.com/sprout-ui/sprout/pkg/testing"
)

type fixture struct {
	t    *testing.T
	f    *sproutest.Factory
	exec *executor.Executor
	root platform.View
	c    *Composer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := sproutest.NewFactory()
	exec := executor.New()
	root := f.MustView("stack")
	return &fixture{t: t, f: f, exec: exec, root: root, c: New(root, exec.Spawner(), opts...)}
}

// text creates a text view named name.
func (fx *fixture) text(name string) platform.View {
	fx.t.Helper()
	v := fx.f.MustView("text")
	require.NoError(fx.t, v.UpdateProp("text", platform.StringProp(name)))
	return v
}

// texts returns a render function adding one text view per name.
func (fx *fixture) texts(names ...string) func(*Composer) error {
	return func(c *Composer) error {
		for _, n := range names {
			if err := c.AddView(fx.text(n)); err != nil {
				return err
			}
		}
		return nil
	}
}

func (fx *fixture) run() {
	fx.exec.RunUntilStalled()
}

func (fx *fixture) names() []string {
	return sproutest.Names(fx.root)
}

type captureHandler struct {
	mu      sync.Mutex
	errs    []*errors.SproutError
	panics  []*errors.PanicError
	renders []*errors.RenderError
}

func (h *captureHandler) HandleError(err *errors.SproutError) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	h.panics = append(h.panics, err)
	h.mu.Unlock()
}

func (h *captureHandler) HandleRenderError(err *errors.RenderError) {
	h.mu.Lock()
	h.renders = append(h.renders, err)
	h.mu.Unlock()
}

func captureErrors(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}
