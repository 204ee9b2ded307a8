package views

import (
	"fmt"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
	"github.com/sprout-ui/sprout/pkg/signal"
)

// Prop configures a view.
type Prop func(b *builder)

// Orientation is the layout axis of a Stack.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

func setProp(name string, v platform.PropValue) Prop {
	return func(b *builder) { b.set(name, v) }
}

// bindProp keeps name in sync with sig once the view is composed.
func bindProp[T any](name string, sig signal.Signal[T], conv func(T) platform.PropValue) Prop {
	return func(b *builder) {
		view := b.view
		b.bindings = append(b.bindings, func(sp *executor.Spawner) *executor.CancellationHandle {
			return sp.Spawn(signal.ForEach(sig, func(v T) {
				if err := view.UpdateProp(name, conv(v)); err != nil {
					errors.Report(&errors.SproutError{
						Op:   "views.bind",
						Kind: errors.KindPlatform,
						View: view.Kind(),
						Err:  fmt.Errorf("%s: %w", name, err),
					})
				}
			}))
		})
	}
}

func bindFloat(name string, sig signal.Signal[float64]) Prop {
	return bindProp(name, sig, platform.FloatProp)
}

// PadLeft sets the left padding.
func PadLeft(v float64) Prop { return setProp("padLeft", platform.FloatProp(v)) }

// PadTop sets the top padding.
func PadTop(v float64) Prop { return setProp("padTop", platform.FloatProp(v)) }

// PadRight sets the right padding.
func PadRight(v float64) Prop { return setProp("padRight", platform.FloatProp(v)) }

// PadBottom sets the bottom padding.
func PadBottom(v float64) Prop { return setProp("padBottom", platform.FloatProp(v)) }

// PadLeftSignal keeps the left padding equal to sig.
func PadLeftSignal(sig signal.Signal[float64]) Prop { return bindFloat("padLeft", sig) }

// PadTopSignal keeps the top padding equal to sig.
func PadTopSignal(sig signal.Signal[float64]) Prop { return bindFloat("padTop", sig) }

// PadRightSignal keeps the right padding equal to sig.
func PadRightSignal(sig signal.Signal[float64]) Prop { return bindFloat("padRight", sig) }

// PadBottomSignal keeps the bottom padding equal to sig.
func PadBottomSignal(sig signal.Signal[float64]) Prop { return bindFloat("padBottom", sig) }

// Padding sets all four paddings to v.
func Padding(v float64) Prop {
	return func(b *builder) {
		for _, p := range []Prop{PadLeft(v), PadTop(v), PadRight(v), PadBottom(v)} {
			p(b)
		}
	}
}

// TextSize sets the font size.
func TextSize(v float64) Prop { return setProp("textSize", platform.FloatProp(v)) }

// TextSizeSignal keeps the font size equal to sig.
func TextSizeSignal(sig signal.Signal[float64]) Prop { return bindFloat("textSize", sig) }

// XY sets the position.
func XY(x, y float64) Prop {
	return func(b *builder) {
		b.set("x", platform.FloatProp(x))
		b.set("y", platform.FloatProp(y))
	}
}

// XSignal keeps the horizontal position equal to sig.
func XSignal(sig signal.Signal[float64]) Prop { return bindFloat("x", sig) }

// YSignal keeps the vertical position equal to sig.
func YSignal(sig signal.Signal[float64]) Prop { return bindFloat("y", sig) }

// HeightWidth sets the size.
func HeightWidth(h, w float64) Prop {
	return func(b *builder) {
		b.set("height", platform.FloatProp(h))
		b.set("width", platform.FloatProp(w))
	}
}

// HeightSignal keeps the height equal to sig.
func HeightSignal(sig signal.Signal[float64]) Prop { return bindFloat("height", sig) }

// WidthSignal keeps the width equal to sig.
func WidthSignal(sig signal.Signal[float64]) Prop { return bindFloat("width", sig) }

// Orient sets a stack's layout axis.
func Orient(o Orientation) Prop { return setProp("orientation", platform.StringProp(o.String())) }

// OnPress sets the press callback.
func OnPress(fn func()) Prop { return setProp("onPress", platform.CallbackProp(fn)) }

// OnPressSignal replaces the press callback with every value of sig.
func OnPressSignal(sig signal.Signal[func()]) Prop {
	return bindProp("onPress", sig, platform.CallbackProp)
}
