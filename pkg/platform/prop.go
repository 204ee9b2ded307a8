package platform

import (
	"fmt"
	"strconv"
)

// PropKind identifies the variant held by a PropValue.
type PropKind int

const (
	PropString PropKind = iota
	PropFloat
	PropBool
	PropCallback
)

func (k PropKind) String() string {
	switch k {
	case PropString:
		return "string"
	case PropFloat:
		return "float"
	case PropBool:
		return "bool"
	case PropCallback:
		return "callback"
	default:
		return fmt.Sprintf("PropKind(%d)", int(k))
	}
}

// PropValue is a closed union of the property types a node accepts.
type PropValue struct {
	kind PropKind
	s    string
	f    float64
	b    bool
	cb   func()
}

// StringProp returns a string property.
func StringProp(s string) PropValue {
	return PropValue{kind: PropString, s: s}
}

// FloatProp returns a numeric property.
func FloatProp(f float64) PropValue {
	return PropValue{kind: PropFloat, f: f}
}

// BoolProp returns a boolean property.
func BoolProp(b bool) PropValue {
	return PropValue{kind: PropBool, b: b}
}

// CallbackProp returns a callback property. Native code invokes it by ID
// through the registry.
func CallbackProp(fn func()) PropValue {
	return PropValue{kind: PropCallback, cb: fn}
}

// Kind returns the variant.
func (p PropValue) Kind() PropKind { return p.kind }

// AsString returns the string value and whether p holds one.
func (p PropValue) AsString() (string, bool) { return p.s, p.kind == PropString }

// AsFloat returns the numeric value and whether p holds one.
func (p PropValue) AsFloat() (float64, bool) { return p.f, p.kind == PropFloat }

// AsBool returns the boolean value and whether p holds one.
func (p PropValue) AsBool() (bool, bool) { return p.b, p.kind == PropBool }

// AsCallback returns the callback and whether p holds one.
func (p PropValue) AsCallback() (func(), bool) { return p.cb, p.kind == PropCallback }

// Any returns the held value as an untyped Go value.
func (p PropValue) Any() any {
	switch p.kind {
	case PropString:
		return p.s
	case PropFloat:
		return p.f
	case PropBool:
		return p.b
	case PropCallback:
		return p.cb
	default:
		return nil
	}
}

// String formats the value for logs and tree dumps.
func (p PropValue) String() string {
	switch p.kind {
	case PropString:
		return strconv.Quote(p.s)
	case PropFloat:
		return strconv.FormatFloat(p.f, 'g', -1, 64)
	case PropBool:
		return strconv.FormatBool(p.b)
	case PropCallback:
		return "<callback>"
	default:
		return "<invalid>"
	}
}
