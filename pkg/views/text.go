package views

import (
	"github.com/sprout-ui/sprout/pkg/compose"
	"github.com/sprout-ui/sprout/pkg/platform"
	"github.com/sprout-ui/sprout/pkg/signal"
)

// Text displays a string.
type Text struct {
	builder
}

// NewText creates a text view showing text.
func NewText(f Factory, text string, props ...Prop) *Text {
	t := &Text{builder: newBuilder(f, KindText, nil)}
	t.set("text", platform.StringProp(text))
	t.apply(props)
	return t
}

// TextSignal keeps the text equal to sig.
func (t *Text) TextSignal(sig signal.Signal[string]) *Text {
	t.apply([]Prop{bindProp("text", sig, platform.StringProp)})
	return t
}

// Compose adds the text to c.
func (t *Text) Compose(c *compose.Composer) error {
	return t.compose(c)
}
