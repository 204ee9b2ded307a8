package platform

import "sync"

// DispatchFunc schedules a callback on the thread that owns the view tree.
type DispatchFunc func(callback func())

var (
	dispatchMu   sync.RWMutex
	dispatchFunc DispatchFunc
)

// RegisterDispatch sets the function used to run native callbacks on the
// UI thread. The host package installs its executor's spawner here.
// Passing nil clears it.
func RegisterDispatch(fn DispatchFunc) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}
