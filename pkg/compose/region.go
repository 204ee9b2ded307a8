package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"

	"github.com/sprout-ui/sprout/pkg/errors"
	"github.com/sprout-ui/sprout/pkg/events"
	"github.com/sprout-ui/sprout/pkg/executor"
	"github.com/sprout-ui/sprout/pkg/signal"
)

// Region is a part of the tree re-rendered on every new signal value.
type Region struct {
	id   string
	comp *Composer

	// Exactly one of handle and leaked is set: handle when the region is
	// owned by an enclosing region, leaked when owned by its parent view.
	handle *executor.CancellationHandle
	leaked *executor.Leaked

	renders int
	failed  bool
	closed  bool
}

// IfSignal renders render(rc, v) in a new region for every change of sig.
func IfSignal(c *Composer, sig signal.Signal[bool], render func(rc *Composer, v bool) error) (*Region, error) {
	return MatchSignal(c, sig, render)
}

// MatchSignal renders render(rc, v) in a new region whenever sig yields a
// value different from the previous one.
func MatchSignal[T comparable](c *Composer, sig signal.Signal[T], render func(rc *Composer, v T) error) (*Region, error) {
	return MatchSignalFunc(c, sig, func(a, b T) bool { return a == b }, render)
}

// MatchSignalFunc is MatchSignal with a custom equality. The region does
// not re-render for values eq reports equal to the previous one.
//
// With no parent view the call does nothing, or fails with ErrNoParent in
// strict mode.
func MatchSignalFunc[T any](c *Composer, sig signal.Signal[T], eq func(a, b T) bool, render func(rc *Composer, v T) error) (*Region, error) {
	if c.parent.IsZero() {
		if c.strict {
			return nil, &errors.SproutError{Op: "compose.MatchSignal", Kind: errors.KindPlatform, Err: ErrNoParent}
		}
		return nil, nil
	}
	if c.spawner == nil {
		return nil, &errors.SproutError{Op: "compose.MatchSignal", Kind: errors.KindInit, Err: ErrNoSpawner}
	}

	id := uuid.Must(uuid.NewV7()).String()
	r := &Region{id: id, comp: c.fork("region:" + id)}

	fut := signal.ForEach(signal.DedupeFunc(sig, eq), func(v T) {
		r.update(func(rc *Composer) error { return render(rc, v) })
	})
	h := c.spawner.Spawn(fut)
	if c.inTx {
		r.handle = h
		c.nested = append(c.nested, r)
	} else {
		r.leaked = h.Leak()
		c.parent.OnTeardown(r.teardown)
	}
	return r, nil
}

// ID returns the region identifier used in logs and events.
func (r *Region) ID() string { return r.id }

// Renders returns how many times the region has rendered.
func (r *Region) Renders() int { return r.renders }

// Failed reports whether a render panicked, ending the subscription.
func (r *Region) Failed() bool { return r.failed }

// Len returns the number of views the region itself currently holds.
func (r *Region) Len() int { return len(r.comp.log) }

// Composer returns the region's composer.
func (r *Region) Composer() *Composer { return r.comp }

// Dispose stops the subscription and removes the rendered views.
func (r *Region) Dispose() error {
	return r.remove()
}

func (r *Region) update(render func(*Composer) error) {
	if r.closed || r.failed {
		return
	}
	rc := r.comp
	if err := rc.RewindTransaction(); err != nil {
		r.reportError(err)
		return
	}

	rc.StartTransaction()
	recovered, panicked, err := r.run(rc, render)
	rc.EndTransaction()
	r.renders++

	switch {
	case panicked:
		r.failed = true
		errors.ReportRender(&errors.RenderError{
			Region:     r.id,
			Recovered:  recovered,
			StackTrace: errors.CaptureStack(),
			Timestamp:  time.Now(),
		})
		capitan.Emit(context.Background(), events.RegionFailed,
			events.KeyRegion.Field(r.id),
			events.KeyError.Field(fmt.Sprint(recovered)),
		)
		r.stop()
	case err != nil:
		r.reportError(err)
	default:
		rc.logger.Debug("region rendered", "region", r.id, "views", len(rc.log))
		capitan.Emit(context.Background(), events.RegionRendered,
			events.KeyRegion.Field(r.id),
			events.KeyCount.Field(len(rc.log)),
		)
	}
}

func (r *Region) run(rc *Composer, render func(*Composer) error) (recovered any, panicked bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok && errors.IsFatal(e) {
				panic(rec)
			}
			recovered, panicked = rec, true
		}
	}()
	return nil, false, render(rc)
}

func (r *Region) reportError(err error) {
	errors.ReportRender(&errors.RenderError{
		Region:    r.id,
		Err:       err,
		Timestamp: time.Now(),
	})
	capitan.Emit(context.Background(), events.RegionFailed,
		events.KeyRegion.Field(r.id),
		events.KeyError.Field(err.Error()),
	)
}

func (r *Region) stop() {
	if r.handle != nil {
		r.handle.Cancel()
	}
	if r.leaked != nil {
		r.leaked.Discard()
	}
}

// remove cancels the subscription and removes the region's views from the
// parent.
func (r *Region) remove() error {
	r.closed = true
	r.stop()
	return r.comp.RewindTransaction()
}

// teardown cancels the subscription and tears down the region's views,
// leaving the parent's child list alone.
func (r *Region) teardown() {
	r.closed = true
	r.stop()
	r.comp.teardownContents()
}
