package platform

import (
	"fmt"
	"sync"

	"github.com/sprout-ui/sprout/pkg/errors"
)

// channelRegistry maps channel names to method channels for native calls.
type channelRegistry struct {
	mu             sync.RWMutex
	methodChannels map[string]*MethodChannel
}

var channels = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
}

func (r *channelRegistry) register(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) get(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.methodChannels[name]
	r.mu.RUnlock()
	return ch
}

// NativeBridge is the interface to native platform code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

// SetNativeBridge installs the native bridge. Passing nil disconnects it.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()
}

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

// invokeNative encodes args, calls native, and decodes the reply.
func invokeNative(codec MessageCodec, channel, method string, args any) (any, error) {
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := codec.Encode(args)
	if err != nil {
		return nil, err
	}

	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}

	return codec.Decode(resultData)
}

// HandleMethodCall is called from the bridge when native invokes a Go method.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := channels.get(channel)
	if ch == nil {
		err := fmt.Errorf("%w: %s", ErrChannelNotFound, channel)
		errors.Report(&errors.SproutError{
			Op:   "platform.HandleMethodCall",
			Kind: errors.KindPlatform,
			Err:  err,
		})
		return nil, err
	}

	args, err := ch.codec.Decode(argsData)
	if err != nil {
		return nil, err
	}

	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return ch.codec.Encode(result)
}

// ResetForTest clears the native bridge, the dispatch function and every
// registered channel. This should only be called from tests.
func ResetForTest() {
	SetNativeBridge(nil)
	RegisterDispatch(nil)

	channels.mu.Lock()
	channels.methodChannels = make(map[string]*MethodChannel)
	channels.mu.Unlock()
}
