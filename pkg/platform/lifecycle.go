package platform

import (
	"fmt"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/signal"
)

// LifecycleChannel carries app lifecycle changes from native code.
const LifecycleChannel = "sprout/lifecycle"

// LifecycleState represents the current app lifecycle state.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the app is visible and responding to user input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the app is visible but not receiving input,
	// for example while a system dialog is shown.
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused indicates the app is not visible but still running.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the app is still hosted but detached from any view.
	LifecycleStateDetached LifecycleState = "detached"
)

func (s LifecycleState) valid() bool {
	switch s {
	case LifecycleStateResumed, LifecycleStateInactive, LifecycleStatePaused, LifecycleStateDetached:
		return true
	}
	return false
}

// Lifecycle mirrors the native app lifecycle as a signal, so regions can
// render differently while the app is paused.
type Lifecycle struct {
	channel *MethodChannel
	state   *signal.Mutable[LifecycleState]
}

// NewLifecycle registers LifecycleChannel. The initial state is resumed.
func NewLifecycle() *Lifecycle {
	l := &Lifecycle{
		channel: NewMethodChannel(LifecycleChannel),
		state:   signal.NewMutable(LifecycleStateResumed),
	}
	l.channel.SetHandler(l.handleMethodCall)
	return l
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	return l.state.Get()
}

// Signal returns a signal of the lifecycle state.
func (l *Lifecycle) Signal() signal.Signal[LifecycleState] {
	return l.state.Signal()
}

// IsResumed returns true if the app is in the resumed state.
func (l *Lifecycle) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

func (l *Lifecycle) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "didChangeState":
		m, _ := args.(map[string]any)
		raw, _ := m["state"].(string)
		state := LifecycleState(raw)
		if !state.valid() {
			err := fmt.Errorf("%w: didChangeState state %v", ErrInvalidArguments, m["state"])
			errors.Report(&errors.SproutError{
				Op:   "lifecycle.didChangeState",
				Kind: errors.KindPlatform,
				Err:  err,
			})
			return nil, err
		}
		signal.SetNeq(l.state, state)
		return nil, nil
	default:
		return nil, ErrMethodNotFound
	}
}
