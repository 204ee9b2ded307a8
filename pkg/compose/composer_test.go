package compose

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/platform"
	sproutest "github.com/sprout-ui/sprout/pkg/testing"
)

func TestComposer_AppendsOutsideTransaction(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.texts("A", "B", "C")(fx.c))

	assert.Equal(t, []string{"A", "B", "C"}, fx.names())
	assert.Equal(t, 3, fx.c.PositionContext().CurrentIndex())
	assert.Empty(t, fx.c.Transactions())
	assert.False(t, fx.c.InTransaction())
	assert.True(t, fx.c.Parent().Same(fx.root))
}

func TestComposer_RewindRestoresChildren(t *testing.T) {
	for n := 0; n <= 6; n++ {
		fx := newFixture(t)
		before := []platform.View{fx.text("s1"), fx.text("s2")}
		for _, v := range before {
			require.NoError(t, fx.c.AddView(v))
		}

		fx.c.StartTransaction()
		added := make([]platform.View, n)
		for i := range added {
			added[i] = fx.text("t")
			require.NoError(t, fx.c.AddView(added[i]))
		}
		fx.c.EndTransaction()

		log := fx.c.Transactions()
		require.Len(t, log, n)
		for i, a := range log {
			assert.Equal(t, i, a.Index, "entries are relative to the transaction start")
			assert.True(t, a.View.Same(added[i]))
		}
		assert.Equal(t, 2+n, fx.c.PositionContext().CurrentIndex())

		require.NoError(t, fx.c.RewindTransaction())

		children := sproutest.NodeOf(fx.root).Children()
		require.Len(t, children, 2, "n=%d", n)
		for i := range before {
			assert.True(t, children[i].Same(before[i]), "identity and order are preserved")
		}
		for _, v := range added {
			assert.True(t, v.IsTornDown(), "removed views are torn down")
		}
		assert.Empty(t, fx.c.Transactions())
		assert.Equal(t, 2, fx.c.PositionContext().CurrentIndex())
	}
}

func TestComposer_RewindEmptyLogIsNoop(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.c.RewindTransaction())
	fx.c.StartTransaction()
	fx.c.EndTransaction()
	require.NoError(t, fx.c.RewindTransaction())
	assert.Empty(t, fx.f.Calls())
}

func TestComposer_FailedInsertLeavesNoEntry(t *testing.T) {
	fx := newFixture(t)
	boom := stderrors.New("rejected")

	fx.c.StartTransaction()
	require.NoError(t, fx.c.AddView(fx.text("a")))
	fx.f.FailNext(sproutest.OpInsert, boom)
	err := fx.c.AddView(fx.text("b"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, errors.KindPlatform, errors.KindOf(err))
	require.NoError(t, fx.c.AddView(fx.text("c")))
	fx.c.EndTransaction()

	assert.Equal(t, []string{"a", "c"}, fx.names())
	log := fx.c.Transactions()
	require.Len(t, log, 2)
	assert.Equal(t, 0, log[0].Index)
	assert.Equal(t, 1, log[1].Index)

	require.NoError(t, fx.c.RewindTransaction())
	assert.Empty(t, fx.names())
}

func TestComposer_FailedRemovalKeepsRemainingEntries(t *testing.T) {
	fx := newFixture(t)
	boom := stderrors.New("busy")

	fx.c.StartTransaction()
	require.NoError(t, fx.texts("a", "b", "c")(fx.c))
	fx.c.EndTransaction()

	fx.f.FailNext(sproutest.OpRemoveAt, nil)
	fx.f.FailNext(sproutest.OpRemoveAt, boom)
	err := fx.c.RewindTransaction()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, fx.names())
	assert.Len(t, fx.c.Transactions(), 2)

	require.NoError(t, fx.c.RewindTransaction())
	assert.Empty(t, fx.names())
	assert.Equal(t, 0, fx.c.PositionContext().CurrentIndex())
}

func TestComposer_NoParent(t *testing.T) {
	v := sproutest.NewFactory().MustView("text")

	lenient := New(platform.View{}, nil)
	assert.NoError(t, lenient.AddView(v))
	assert.True(t, v.IsTornDown(), "a dropped view is torn down")
	r, err := IfSignal(lenient, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, r)

	strict := New(platform.View{}, nil, WithStrictParent(true))
	assert.ErrorIs(t, strict.AddView(v), ErrNoParent)
	_, err = IfSignal(strict, nil, nil)
	assert.ErrorIs(t, err, ErrNoParent)
}

func TestComposer_NoSpawner(t *testing.T) {
	f := sproutest.NewFactory()
	c := New(f.MustView("stack"), nil)
	_, err := IfSignal(c, nil, nil)
	assert.ErrorIs(t, err, ErrNoSpawner)
}

// reentrantNode calls back into the composer while it is mutating.
type reentrantNode struct {
	sproutest.RecordingNode
	c     *Composer
	extra platform.View
}

func (n *reentrantNode) AppendChild(platform.View) error {
	return n.c.AddView(n.extra)
}

func TestComposer_ReentrancyIsFatal(t *testing.T) {
	h := captureErrors(t)
	f := sproutest.NewFactory()
	node := &reentrantNode{extra: f.MustView("text")}
	c := New(platform.NewView("stack", node), executor.New().Spawner())
	node.c = c

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = c.AddView(f.MustView("text"))
	}()

	se, ok := recovered.(*errors.SproutError)
	require.True(t, ok, "recovered %T", recovered)
	assert.Equal(t, errors.KindReentrancy, se.Kind)
	assert.ErrorIs(t, se, ErrReentrant)
	require.Len(t, h.errs, 1)
}

func TestScope_FinishAttachesContainer(t *testing.T) {
	fx := newFixture(t)
	inner := fx.f.MustView("stack")

	s := fx.c.Begin(inner)
	require.NoError(t, fx.texts("x", "y")(s.Composer()))
	assert.Empty(t, fx.names(), "container is attached on Finish")

	require.NoError(t, s.Finish())
	require.NoError(t, s.Finish())
	assert.Len(t, fx.names(), 1)
	assert.Equal(t, []string{"x", "y"}, sproutest.Names(inner))
}

func TestWith_TeardownCascades(t *testing.T) {
	fx := newFixture(t)
	inner := fx.f.MustView("stack")
	leaf := fx.text("leaf")

	require.NoError(t, fx.c.With(inner, func(c *Composer) error {
		return c.AddView(leaf)
	}))

	fx.root.Teardown()
	assert.True(t, inner.IsTornDown())
	assert.True(t, leaf.IsTornDown())
}

func TestWith_ErrorTearsDownContainer(t *testing.T) {
	fx := newFixture(t)
	inner := fx.f.MustView("stack")
	boom := stderrors.New("boom")

	err := fx.c.With(inner, func(*Composer) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, inner.IsTornDown())
	assert.Empty(t, fx.names())
}
