package platform

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/errors"
)

type panicRecorder struct {
	discardHandler
	mu     sync.Mutex
	panics []*errors.PanicError
}

func (h *panicRecorder) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	h.panics = append(h.panics, err)
	h.mu.Unlock()
}

func callbackCount(r *Registry) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}

func TestRegistry_RejectedCallbackIsReleased(t *testing.T) {
	bridge := SetupTestBridge(t.Cleanup)
	reg := NewRegistry()

	btn, err := reg.NewView("button")
	require.NoError(t, err)

	var pressed []string
	require.NoError(t, btn.UpdateProp("onPress", CallbackProp(func() { pressed = append(pressed, "first") })))

	rejected := stderrors.New("native rejected the prop")
	bridge.Err = rejected
	err = btn.UpdateProp("onPress", CallbackProp(func() { pressed = append(pressed, "second") }))
	assert.ErrorIs(t, err, rejected)
	bridge.Err = nil

	assert.Equal(t, 1, callbackCount(reg))
	_, err = HandleMethodCall(ViewsChannel, "onCallback", []byte(`{"callbackId":2}`))
	assert.ErrorIs(t, err, ErrUnknownCallback)

	// Native still holds the first callback.
	_, err = HandleMethodCall(ViewsChannel, "onCallback", []byte(`{"callbackId":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, pressed)
}

func TestRegistry_PlainValueReleasesCallback(t *testing.T) {
	SetupTestBridge(t.Cleanup)
	reg := NewRegistry()

	btn, err := reg.NewView("button")
	require.NoError(t, err)
	require.NoError(t, btn.UpdateProp("onPress", CallbackProp(func() {})))
	assert.Equal(t, 1, callbackCount(reg))

	require.NoError(t, btn.UpdateProp("onPress", BoolProp(false)))
	assert.Zero(t, callbackCount(reg))
}

func TestRegistry_InlineCallbackPanicIsRecovered(t *testing.T) {
	SetupTestBridge(t.Cleanup)
	RegisterDispatch(nil)
	h := &panicRecorder{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	reg := NewRegistry()

	btn, err := reg.NewView("button")
	require.NoError(t, err)
	require.NoError(t, btn.UpdateProp("onPress", CallbackProp(func() { panic("boom") })))

	var out []byte
	require.NotPanics(t, func() {
		out, err = HandleMethodCall(ViewsChannel, "onCallback", []byte(`{"callbackId":1}`))
	})
	assert.Nil(t, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback 1 panicked: boom")

	require.Len(t, h.panics, 1)
	assert.Equal(t, "platform.onCallback", h.panics[0].Op)
	assert.Equal(t, "boom", h.panics[0].Value)
}
