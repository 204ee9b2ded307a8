package platform

import "sync"

// BridgeCall is one native invocation captured by a RecordingBridge.
type BridgeCall struct {
	Channel string
	Method  string
	Args    any // JSON-decoded
}

// RecordingBridge is a NativeBridge that accepts every call and records it.
// Err, when set, is returned from every call instead.
type RecordingBridge struct {
	mu    sync.Mutex
	calls []BridgeCall
	Err   error
}

// InvokeMethod records the call.
func (b *RecordingBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	decoded, _ := DefaultCodec.Decode(args)
	b.mu.Lock()
	b.calls = append(b.calls, BridgeCall{Channel: channel, Method: method, Args: decoded})
	err := b.Err
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(nil)
}

// Calls returns a copy of the recorded calls.
func (b *RecordingBridge) Calls() []BridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BridgeCall, len(b.calls))
	copy(out, b.calls)
	return out
}

// Methods returns the recorded method names in call order.
func (b *RecordingBridge) Methods() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	for i, c := range b.calls {
		out[i] = c.Method
	}
	return out
}

// Reset clears the recorded calls.
func (b *RecordingBridge) Reset() {
	b.mu.Lock()
	b.calls = b.calls[:0]
	b.mu.Unlock()
}

// SetupTestBridge installs a RecordingBridge and a synchronous dispatch
// function. The cleanup function should be testing.T.Cleanup or equivalent;
// it registers a teardown that calls ResetForTest.
//
//	bridge := platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) *RecordingBridge {
	b := &RecordingBridge{}
	SetNativeBridge(b)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
	return b
}
