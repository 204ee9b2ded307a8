package platform

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sprout-ui/sprout/pkg/errors"
)

// ViewsChannel is the method channel carrying view-tree mutations.
const ViewsChannel = "sprout/views"

// Registry creates native views and routes native callbacks back to Go.
type Registry struct {
	channel *MethodChannel

	nextViewID     atomic.Int64
	nextCallbackID atomic.Int64

	mu        sync.RWMutex
	nodes     map[int64]*bridgeNode
	callbacks map[int64]func()
}

// NewRegistry creates a registry bound to ViewsChannel.
func NewRegistry() *Registry {
	return newRegistry(ViewsChannel)
}

func newRegistry(channel string) *Registry {
	r := &Registry{
		channel:   NewMethodChannel(channel),
		nodes:     make(map[int64]*bridgeNode),
		callbacks: make(map[int64]func()),
	}
	r.channel.SetHandler(r.handleMethodCall)
	return r
}

// NewNode asks native code to create a view of the given kind.
func (r *Registry) NewNode(kind string) (Node, error) {
	id := r.nextViewID.Add(1)
	if _, err := r.channel.Invoke("create", map[string]any{
		"viewId":   id,
		"viewType": kind,
	}); err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	n := &bridgeNode{id: id, kind: kind, reg: r, callbacks: make(map[string]int64)}
	r.mu.Lock()
	r.nodes[id] = n
	r.mu.Unlock()
	return n, nil
}

// NewView is NewNode wrapped in a View. The native view is disposed when the
// View is torn down.
func (r *Registry) NewView(kind string) (View, error) {
	n, err := r.NewNode(kind)
	if err != nil {
		return View{}, err
	}
	v := NewView(kind, n)
	id := n.(*bridgeNode).id
	v.OnTeardown(func() { r.Dispose(id) })
	return v, nil
}

// Dispose releases the view and its callbacks and tells native to destroy it.
func (r *Registry) Dispose(viewID int64) {
	n, ok := r.forget(viewID)
	if !ok {
		return
	}
	if _, err := r.channel.Invoke("dispose", map[string]any{"viewId": viewID}); err != nil {
		errors.Report(&errors.SproutError{
			Op:   "platform.Dispose",
			Kind: errors.KindPlatform,
			View: n.kind,
			Err:  err,
		})
	}
}

// forget drops the node and its callbacks from the registry.
func (r *Registry) forget(viewID int64) (*bridgeNode, bool) {
	r.mu.Lock()
	n, ok := r.nodes[viewID]
	if ok {
		delete(r.nodes, viewID)
	}
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	n.disposed.Store(true)
	n.mu.Lock()
	ids := n.callbacks
	n.callbacks = make(map[string]int64)
	n.mu.Unlock()
	for _, id := range ids {
		r.releaseCallback(id)
	}
	return n, true
}

// Len returns the number of live native views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

func (r *Registry) registerCallback(fn func()) int64 {
	id := r.nextCallbackID.Add(1)
	r.mu.Lock()
	r.callbacks[id] = fn
	r.mu.Unlock()
	return id
}

func (r *Registry) releaseCallback(id int64) {
	r.mu.Lock()
	delete(r.callbacks, id)
	r.mu.Unlock()
}

// handleMethodCall processes calls from native code.
func (r *Registry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onCallback":
		id, ok := argInt64(args, "callbackId")
		if !ok {
			return nil, ErrInvalidArguments
		}
		r.mu.RLock()
		fn := r.callbacks[id]
		r.mu.RUnlock()
		if fn == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCallback, id)
		}
		if !Dispatch(fn) {
			if err := runCallback(id, fn); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case "onViewDisposed":
		id, ok := argInt64(args, "viewId")
		if !ok {
			return nil, ErrInvalidArguments
		}
		r.forget(id)
		return nil, nil

	default:
		return nil, ErrMethodNotFound
	}
}

// runCallback runs fn on the calling thread. A panic is reported and
// returned to native as an error instead of unwinding into the bridge.
func runCallback(id int64, fn func()) (err error) {
	defer errors.RecoverWithCallback("platform.onCallback", func(r any) {
		err = fmt.Errorf("callback %d panicked: %v", id, r)
	})
	fn()
	return nil
}

// bridgeNode forwards mutations to one native view.
type bridgeNode struct {
	id       int64
	kind     string
	reg      *Registry
	disposed atomic.Bool

	mu        sync.Mutex
	callbacks map[string]int64 // prop name to callback ID
}

func (n *bridgeNode) invoke(method string, args map[string]any) error {
	if n.disposed.Load() {
		return ErrClosed
	}
	args["viewId"] = n.id
	_, err := n.reg.channel.Invoke(method, args)
	return err
}

func (n *bridgeNode) childID(child View) (int64, error) {
	c, ok := child.node().(*bridgeNode)
	if !ok || c.reg != n.reg {
		return 0, ErrForeignView
	}
	return c.id, nil
}

// UpdateProp sends the value to native. A callback gets a fresh ID that
// replaces the prop's previous one only once native accepted it.
func (n *bridgeNode) UpdateProp(name string, value PropValue) error {
	wire := value.Any()
	fn, isCallback := value.AsCallback()
	var id int64
	if isCallback {
		id = n.reg.registerCallback(fn)
		wire = map[string]any{"callbackId": id}
	}

	err := n.invoke("updateProp", map[string]any{
		"name":  name,
		"kind":  value.Kind().String(),
		"value": wire,
	})
	if err != nil {
		if isCallback {
			n.reg.releaseCallback(id)
		}
		return err
	}

	n.mu.Lock()
	old, had := n.callbacks[name]
	switch {
	case n.disposed.Load():
		// forget already released the node's callbacks.
		had = false
		if isCallback {
			defer n.reg.releaseCallback(id)
		}
	case isCallback:
		n.callbacks[name] = id
	default:
		delete(n.callbacks, name)
	}
	n.mu.Unlock()
	if had {
		n.reg.releaseCallback(old)
	}
	return nil
}

func (n *bridgeNode) AppendChild(child View) error {
	id, err := n.childID(child)
	if err != nil {
		return err
	}
	return n.invoke("appendChild", map[string]any{"childId": id})
}

func (n *bridgeNode) InsertChildAt(child View, index int) error {
	id, err := n.childID(child)
	if err != nil {
		return err
	}
	return n.invoke("insertChildAt", map[string]any{"childId": id, "index": index})
}

func (n *bridgeNode) RemoveChild(child View) error {
	id, err := n.childID(child)
	if err != nil {
		return err
	}
	return n.invoke("removeChild", map[string]any{"childId": id})
}

func (n *bridgeNode) RemoveChildAt(index int) error {
	return n.invoke("removeChildAt", map[string]any{"index": index})
}

func (n *bridgeNode) RawHandle() (any, error) {
	if n.disposed.Load() {
		return nil, ErrClosed
	}
	return n.id, nil
}
