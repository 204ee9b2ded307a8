package views

import (
	"github.com/sprout-ui/sprout/pkg/compose"
	"github.com/sprout-ui/sprout/pkg/platform"
	"github.com/sprout-ui/sprout/pkg/signal"
)

// Button is a pressable view with a label.
type Button struct {
	builder
}

// NewButton creates a button that calls onPress when pressed.
func NewButton(f Factory, onPress func(), props ...Prop) *Button {
	b := &Button{builder: newBuilder(f, KindButton, nil)}
	if onPress != nil {
		b.apply([]Prop{OnPress(onPress)})
	}
	b.apply(props)
	return b
}

// Label sets the button label.
func (b *Button) Label(s string) *Button {
	b.set("label", platform.StringProp(s))
	return b
}

// LabelSignal keeps the label equal to sig.
func (b *Button) LabelSignal(sig signal.Signal[string]) *Button {
	b.apply([]Prop{bindProp("label", sig, platform.StringProp)})
	return b
}

// Compose adds the button to c.
func (b *Button) Compose(c *compose.Composer) error {
	return b.compose(c)
}
