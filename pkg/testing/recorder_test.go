package testing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/platform"
)

func TestRecordingNode_Mutations(t *testing.T) {
	f := NewFactory()
	root := f.MustView("stack")
	a := f.MustView("text")
	b := f.MustView("text")
	require.NoError(t, a.UpdateProp("text", platform.StringProp("A")))
	require.NoError(t, b.UpdateProp("text", platform.StringProp("B")))

	require.NoError(t, root.AppendChild(a))
	require.NoError(t, root.InsertChildAt(b, 0))
	assert.Equal(t, []string{"B", "A"}, Names(root))

	require.NoError(t, root.RemoveChildAt(0))
	require.NoError(t, root.RemoveChild(a))
	assert.Empty(t, Names(root))
	assert.False(t, NodeOf(a).Attached())

	assert.Equal(t, []string{
		`text#2.text="A"`,
		`text#3.text="B"`,
		"stack#1.append(text#2)",
		"stack#1.insert(text#3, 0)",
		"stack#1.removeAt(0)",
		"stack#1.remove(text#2)",
	}, f.CallStrings())
	assert.Equal(t, 3, f.Created())
}

func TestRecordingNode_Errors(t *testing.T) {
	f := NewFactory()
	root := f.MustView("stack")
	other := f.MustView("stack")
	a := f.MustView("text")

	assert.ErrorIs(t, root.InsertChildAt(a, 1), platform.ErrIndexOutOfRange)
	assert.ErrorIs(t, root.RemoveChildAt(0), platform.ErrIndexOutOfRange)
	assert.ErrorIs(t, root.RemoveChild(a), ErrNotChild)

	require.NoError(t, root.AppendChild(a))
	assert.ErrorIs(t, other.AppendChild(a), ErrAlreadyAttached)

	foreign := platform.NewView("x", &stubNode{})
	assert.ErrorIs(t, root.AppendChild(foreign), ErrForeignNode)
	assert.Len(t, f.Calls(), 1, "failed mutations are not recorded")
}

func TestFactory_FailNext(t *testing.T) {
	f := NewFactory()
	root := f.MustView("stack")
	a := f.MustView("text")
	boom := errors.New("boom")

	f.FailNext(OpAppend, boom)
	assert.ErrorIs(t, root.AppendChild(a), boom)
	assert.Empty(t, Names(root))
	assert.False(t, NodeOf(a).Attached())

	require.NoError(t, root.AppendChild(a))
	assert.Len(t, Names(root), 1)

	f.ResetCalls()
	assert.Empty(t, f.Calls())
}

func TestDump_Golden(t *testing.T) {
	f := NewFactory()
	root := f.MustView("stack")
	require.NoError(t, root.UpdateProp("orientation", platform.StringProp("vertical")))
	title := f.MustView("text")
	require.NoError(t, title.UpdateProp("text", platform.StringProp("Hello")))
	require.NoError(t, title.UpdateProp("textSize", platform.FloatProp(24)))
	btn := f.MustView("button")
	require.NoError(t, btn.UpdateProp("onPress", platform.CallbackProp(func() {})))
	require.NoError(t, btn.UpdateProp("label", platform.StringProp("Go")))
	inner := f.MustView("stack")
	leaf := f.MustView("text")
	require.NoError(t, leaf.UpdateProp("visible", platform.BoolProp(false)))

	require.NoError(t, root.AppendChild(title))
	require.NoError(t, root.AppendChild(btn))
	require.NoError(t, inner.AppendChild(leaf))
	require.NoError(t, root.AppendChild(inner))

	AssertGolden(t, "dump", Dump(root))
}

func TestNames_NonRecordingView(t *testing.T) {
	assert.Nil(t, Names(platform.View{}))
	assert.Equal(t, "", Dump(platform.View{}))
}

type stubNode struct{}

func (stubNode) UpdateProp(string, platform.PropValue) error { return nil }
func (stubNode) AppendChild(platform.View) error             { return nil }
func (stubNode) InsertChildAt(platform.View, int) error      { return nil }
func (stubNode) RemoveChild(platform.View) error             { return nil }
func (stubNode) RemoveChildAt(int) error                     { return nil }
func (stubNode) RawHandle() (any, error)                     { return nil, nil }
