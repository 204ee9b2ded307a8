package compose

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
)

var (
	// ErrNoParent is returned in strict mode when there is no parent view.
	ErrNoParent = stderrors.New("compose: no parent view")

	// ErrIndexUnderflow is returned when a removal finds no counted view.
	ErrIndexUnderflow = stderrors.New("compose: position index underflow")

	// ErrNoSpawner is returned when a region is created without a spawner.
	ErrNoSpawner = stderrors.New("compose: no spawner")

	// ErrReentrant is wrapped by the fatal error raised when a composer is
	// mutated while already mutating.
	ErrReentrant = stderrors.New("compose: reentrant mutation")
)

// Composer is the single mutation authority for one parent view.
type Composer struct {
	name    string
	parent  platform.View
	spawner *executor.Spawner
	logger  *slog.Logger
	strict  bool

	pc *PositionContext

	// tsi anchors the transaction; base is its depth, so frames[base:] are
	// this composer's own scopes.
	tsi  *PositionContext
	base int

	inTx   bool
	log    []Add
	nested []*Region

	busy bool
}

// New returns a composer that appends to root. The spawner runs region
// subscriptions; it may be nil when no regions are used.
func New(root platform.View, spawner *executor.Spawner, opts ...Option) *Composer {
	c := &Composer{
		name:    "root",
		parent:  root,
		spawner: spawner,
		logger:  slog.Default(),
		pc:      NewPositionContext(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parent returns the view children are added to.
func (c *Composer) Parent() platform.View {
	return c.parent
}

// Spawner returns the spawner used for subscriptions.
func (c *Composer) Spawner() *executor.Spawner {
	return c.spawner
}

// Logger returns the composer's logger.
func (c *Composer) Logger() *slog.Logger {
	return c.logger
}

// InTransaction reports whether a transaction is open.
func (c *Composer) InTransaction() bool {
	return c.inTx
}

// PositionContext returns a clone of the live position context.
func (c *Composer) PositionContext() *PositionContext {
	return c.pc.Clone()
}

// Transactions returns a copy of the transaction log in insertion order.
func (c *Composer) Transactions() []Add {
	out := make([]Add, len(c.log))
	copy(out, c.log)
	return out
}

// AddView adds v to the parent. Inside a transaction v is inserted at the
// current index and recorded; otherwise it is appended and torn down with
// the parent. A failed mutation leaves the log and counters unchanged.
//
// Without a parent v is dropped: it is torn down and nil is returned, or
// ErrNoParent is returned in strict mode and v is left to the caller.
func (c *Composer) AddView(v platform.View) error {
	if c.parent.IsZero() {
		if c.strict {
			return &errors.SproutError{Op: "compose.AddView", Kind: errors.KindPlatform, View: v.Kind(), Err: ErrNoParent}
		}
		v.Teardown()
		return nil
	}

	c.enter("compose.AddView")
	defer c.exit()

	if c.inTx {
		idx := c.pc.CurrentIndex()
		if err := c.parent.InsertChildAt(v, idx); err != nil {
			return platformError("compose.AddView", v, err)
		}
		c.log = append(c.log, Add{Index: idx - c.tsi.CurrentIndex(), View: v})
	} else {
		if err := c.parent.AppendChild(v); err != nil {
			return platformError("compose.AddView", v, err)
		}
		c.parent.OnTeardown(v.Teardown)
	}
	c.pc.Increment()
	return nil
}

// enter marks the composer busy. A composer mutated while busy has been
// re-entered from a node callback, which is fatal.
func (c *Composer) enter(op string) {
	if c.busy {
		errors.Fatal(&errors.SproutError{
			Op:   op,
			Kind: errors.KindReentrancy,
			Err:  fmt.Errorf("%w: %s", ErrReentrant, c.name),
		})
	}
	c.busy = true
}

func (c *Composer) exit() {
	c.busy = false
}

// fork returns a region composer anchored at c's current position and
// moves c past the region.
func (c *Composer) fork(name string) *Composer {
	anchor := c.pc.Clone()
	top := c.pc.top()
	total := &counter{up: top.up}

	r := &Composer{
		name:    name,
		parent:  c.parent,
		spawner: c.spawner,
		logger:  c.logger,
		strict:  c.strict,
		tsi:     anchor,
		base:    anchor.Depth(),
	}
	r.pc = anchor.Clone()
	r.pc.push(&counter{up: total})

	c.pc = anchor.Clone()
	c.pc.push(total)
	c.pc.push(&counter{up: top.up})
	return r
}

// child returns a composer appending to container.
func (c *Composer) child(container platform.View) *Composer {
	return &Composer{
		name:    container.Kind(),
		parent:  container,
		spawner: c.spawner,
		logger:  c.logger,
		strict:  c.strict,
		pc:      NewPositionContext(),
	}
}

func platformError(op string, v platform.View, err error) error {
	return &errors.SproutError{
		Op:   op,
		Kind: errors.KindPlatform,
		View: v.Kind(),
		Err:  err,
	}
}
