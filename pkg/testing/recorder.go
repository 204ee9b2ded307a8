package testing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sprout-ui/sprout/pkg/platform"
)

// Op names a mutation kind in the call log.
type Op string

const (
	OpAppend   Op = "append"
	OpInsert   Op = "insert"
	OpRemove   Op = "remove"
	OpRemoveAt Op = "removeAt"
	OpProp     Op = "prop"
)

var (
	// ErrAlreadyAttached is returned when a child is attached twice.
	ErrAlreadyAttached = errors.New("sproutest: child already attached")

	// ErrNotChild is returned by RemoveChild for a view that is not a child.
	ErrNotChild = errors.New("sproutest: not a child")

	// ErrForeignNode is returned when a child is not a RecordingNode.
	ErrForeignNode = errors.New("sproutest: child is not a recording node")
)

// Call is one recorded mutation.
type Call struct {
	Op     Op
	Parent string
	Child  string
	Index  int
	Prop   string
	Value  string
}

func (c Call) String() string {
	switch c.Op {
	case OpAppend:
		return fmt.Sprintf("%s.append(%s)", c.Parent, c.Child)
	case OpInsert:
		return fmt.Sprintf("%s.insert(%s, %d)", c.Parent, c.Child, c.Index)
	case OpRemove:
		return fmt.Sprintf("%s.remove(%s)", c.Parent, c.Child)
	case OpRemoveAt:
		return fmt.Sprintf("%s.removeAt(%d)", c.Parent, c.Index)
	case OpProp:
		return fmt.Sprintf("%s.%s=%s", c.Parent, c.Prop, c.Value)
	default:
		return fmt.Sprintf("%s.%s", c.Parent, c.Op)
	}
}

// Factory creates RecordingNodes and owns their shared call log.
type Factory struct {
	mu       sync.Mutex
	nextID   int
	calls    []Call
	failures map[Op][]error
	created  []*RecordingNode
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{failures: make(map[Op][]error)}
}

// NewNode creates a recording node of the given kind.
func (f *Factory) NewNode(kind string) (platform.Node, error) {
	return f.newNode(kind), nil
}

func (f *Factory) newNode(kind string) *RecordingNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n := &RecordingNode{
		id:      fmt.Sprintf("%s#%d", kind, f.nextID),
		kind:    kind,
		factory: f,
		props:   make(map[string]platform.PropValue),
	}
	f.created = append(f.created, n)
	return n
}

// MustView creates a recording node wrapped in a View.
func (f *Factory) MustView(kind string) platform.View {
	n := f.newNode(kind)
	return platform.NewView(kind, n)
}

// Calls returns a copy of the call log.
func (f *Factory) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallStrings returns the call log formatted one call per entry.
func (f *Factory) CallStrings() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// ResetCalls clears the call log.
func (f *Factory) ResetCalls() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// Created returns the number of nodes created so far.
func (f *Factory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// FailNext makes the next mutation of kind op fail with err. Queued
// failures are consumed in order.
func (f *Factory) FailNext(op Op, err error) {
	f.mu.Lock()
	f.failures[op] = append(f.failures[op], err)
	f.mu.Unlock()
}

func (f *Factory) takeFailure(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.failures[op]
	if len(q) == 0 {
		return nil
	}
	f.failures[op] = q[1:]
	return q[0]
}

func (f *Factory) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// RecordingNode is an in-memory platform.Node.
type RecordingNode struct {
	id      string
	kind    string
	factory *Factory

	mu       sync.Mutex
	parent   *RecordingNode
	children []platform.View
	props    map[string]platform.PropValue
}

// NodeOf returns the RecordingNode behind v, or nil.
func NodeOf(v platform.View) *RecordingNode {
	h, err := v.RawHandle()
	if err != nil {
		return nil
	}
	n, _ := h.(*RecordingNode)
	return n
}

// ID returns the node's unique identifier, such as "text#3".
func (n *RecordingNode) ID() string { return n.id }

// Kind returns the node kind.
func (n *RecordingNode) Kind() string { return n.kind }

// Name returns the node's "text" or "label" property when set, else its ID.
func (n *RecordingNode) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, key := range [...]string{"text", "label"} {
		if p, ok := n.props[key]; ok {
			if s, ok := p.AsString(); ok {
				return s
			}
		}
	}
	return n.id
}

// Prop returns a property value.
func (n *RecordingNode) Prop(name string) (platform.PropValue, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.props[name]
	return p, ok
}

// Children returns a copy of the child list.
func (n *RecordingNode) Children() []platform.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]platform.View, len(n.children))
	copy(out, n.children)
	return out
}

// Attached reports whether the node currently has a parent.
func (n *RecordingNode) Attached() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent != nil
}

func (n *RecordingNode) UpdateProp(name string, value platform.PropValue) error {
	if err := n.factory.takeFailure(OpProp); err != nil {
		return err
	}
	n.mu.Lock()
	n.props[name] = value
	n.mu.Unlock()
	n.factory.record(Call{Op: OpProp, Parent: n.id, Prop: name, Value: value.String()})
	return nil
}

func (n *RecordingNode) attach(child platform.View) (*RecordingNode, error) {
	c := NodeOf(child)
	if c == nil {
		return nil, ErrForeignNode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.parent != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAttached, c.id)
	}
	c.parent = n
	return c, nil
}

func detach(child platform.View) {
	if c := NodeOf(child); c != nil {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

func (n *RecordingNode) AppendChild(child platform.View) error {
	if err := n.factory.takeFailure(OpAppend); err != nil {
		return err
	}
	c, err := n.attach(child)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()
	n.factory.record(Call{Op: OpAppend, Parent: n.id, Child: c.id})
	return nil
}

func (n *RecordingNode) InsertChildAt(child platform.View, index int) error {
	if err := n.factory.takeFailure(OpInsert); err != nil {
		return err
	}
	n.mu.Lock()
	count := len(n.children)
	n.mu.Unlock()
	if index < 0 || index > count {
		return fmt.Errorf("%w: insert at %d of %d", platform.ErrIndexOutOfRange, index, count)
	}
	c, err := n.attach(child)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.children = append(n.children, platform.View{})
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.mu.Unlock()
	n.factory.record(Call{Op: OpInsert, Parent: n.id, Child: c.id, Index: index})
	return nil
}

func (n *RecordingNode) RemoveChild(child platform.View) error {
	if err := n.factory.takeFailure(OpRemove); err != nil {
		return err
	}
	n.mu.Lock()
	idx := -1
	for i, ch := range n.children {
		if ch.Same(child) {
			idx = i
			break
		}
	}
	if idx < 0 {
		n.mu.Unlock()
		return ErrNotChild
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	n.mu.Unlock()
	detach(child)
	n.factory.record(Call{Op: OpRemove, Parent: n.id, Child: idOf(child)})
	return nil
}

func (n *RecordingNode) RemoveChildAt(index int) error {
	if err := n.factory.takeFailure(OpRemoveAt); err != nil {
		return err
	}
	n.mu.Lock()
	if index < 0 || index >= len(n.children) {
		count := len(n.children)
		n.mu.Unlock()
		return fmt.Errorf("%w: remove at %d of %d", platform.ErrIndexOutOfRange, index, count)
	}
	child := n.children[index]
	n.children = append(n.children[:index], n.children[index+1:]...)
	n.mu.Unlock()
	detach(child)
	n.factory.record(Call{Op: OpRemoveAt, Parent: n.id, Index: index})
	return nil
}

// RawHandle returns the node itself.
func (n *RecordingNode) RawHandle() (any, error) {
	return n, nil
}

func idOf(v platform.View) string {
	if c := NodeOf(v); c != nil {
		return c.id
	}
	return "?"
}
