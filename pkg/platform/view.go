package platform

import (
	"sync"
)

// View is a shared handle to a Node. The zero View refers to no node.
// Copies alias the same node and every capability call holds the node's
// lock for its duration.
type View struct {
	cell *viewCell
}

type viewCell struct {
	kind string

	mu   sync.Mutex
	node Node

	hookMu   sync.Mutex
	hooks    []func()
	tornDown bool
}

// NewView wraps node in a View. kind names the view type for diagnostics.
func NewView(kind string, node Node) View {
	return View{cell: &viewCell{kind: kind, node: node}}
}

// IsZero reports whether v refers to no node.
func (v View) IsZero() bool {
	return v.cell == nil
}

// Same reports whether v and other refer to the same node.
func (v View) Same(other View) bool {
	return v.cell != nil && v.cell == other.cell
}

// Kind returns the view type name.
func (v View) Kind() string {
	if v.cell == nil {
		return ""
	}
	return v.cell.kind
}

// node returns the wrapped node without locking. Only for code that already
// holds, or never needs, the node lock.
func (v View) node() Node {
	if v.cell == nil {
		return nil
	}
	return v.cell.node
}

func (v View) with(fn func(Node) error) error {
	if v.cell == nil {
		return ErrNotAttached
	}
	v.cell.mu.Lock()
	defer v.cell.mu.Unlock()
	return fn(v.cell.node)
}

// UpdateProp sets a property on the node.
func (v View) UpdateProp(name string, value PropValue) error {
	return v.with(func(n Node) error { return n.UpdateProp(name, value) })
}

// AppendChild appends child to the node's children.
func (v View) AppendChild(child View) error {
	if child.IsZero() {
		return ErrNotAttached
	}
	return v.with(func(n Node) error { return n.AppendChild(child) })
}

// InsertChildAt inserts child at index.
func (v View) InsertChildAt(child View, index int) error {
	if child.IsZero() {
		return ErrNotAttached
	}
	if index < 0 {
		return ErrIndexOutOfRange
	}
	return v.with(func(n Node) error { return n.InsertChildAt(child, index) })
}

// RemoveChild detaches child.
func (v View) RemoveChild(child View) error {
	if child.IsZero() {
		return ErrNotAttached
	}
	return v.with(func(n Node) error { return n.RemoveChild(child) })
}

// RemoveChildAt detaches the child at index.
func (v View) RemoveChildAt(index int) error {
	if index < 0 {
		return ErrIndexOutOfRange
	}
	return v.with(func(n Node) error { return n.RemoveChildAt(index) })
}

// RawHandle returns the node's native reference.
func (v View) RawHandle() (any, error) {
	var h any
	err := v.with(func(n Node) error {
		var err error
		h, err = n.RawHandle()
		return err
	})
	return h, err
}

// OnTeardown registers fn to run when the view is torn down. Hooks run in
// reverse registration order. Registering on a view that is already torn
// down runs fn immediately.
func (v View) OnTeardown(fn func()) {
	if v.cell == nil || fn == nil {
		return
	}
	c := v.cell
	c.hookMu.Lock()
	if c.tornDown {
		c.hookMu.Unlock()
		fn()
		return
	}
	c.hooks = append(c.hooks, fn)
	c.hookMu.Unlock()
}

// Teardown runs the registered hooks once. Later calls do nothing.
func (v View) Teardown() {
	if v.cell == nil {
		return
	}
	c := v.cell
	c.hookMu.Lock()
	if c.tornDown {
		c.hookMu.Unlock()
		return
	}
	c.tornDown = true
	hooks := c.hooks
	c.hooks = nil
	c.hookMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// IsTornDown reports whether Teardown has run.
func (v View) IsTornDown() bool {
	if v.cell == nil {
		return false
	}
	v.cell.hookMu.Lock()
	defer v.cell.hookMu.Unlock()
	return v.cell.tornDown
}
