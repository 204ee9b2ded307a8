package signal

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/executor"
)

func countingContext() (*executor.Context, *atomic.Int32) {
	var n atomic.Int32
	return executor.NewContext(executor.NewWaker(func() { n.Add(1) })), &n
}

func TestMutable_FirstPollYieldsCurrent(t *testing.T) {
	m := NewMutable(3)
	sig := m.Signal()
	cx, woken := countingContext()

	v, st := sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, 3, v)

	_, st = sig.PollChange(cx)
	assert.Equal(t, Pending, st)

	m.Set(4)
	assert.Equal(t, int32(1), woken.Load())
	v, st = sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, 4, v)
}

func TestMutable_Coalesces(t *testing.T) {
	m := NewMutable("a")
	sig := m.Signal()
	cx, _ := countingContext()
	sig.PollChange(cx)

	m.Set("b")
	m.Set("c")
	v, st := sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, "c", v)
	_, st = sig.PollChange(cx)
	assert.Equal(t, Pending, st)
}

func TestMutable_IndependentSubscribers(t *testing.T) {
	m := NewMutable(1)
	a, b := m.Signal(), m.Signal()
	cx, _ := countingContext()

	a.PollChange(cx)
	v, st := b.PollChange(cx)
	assert.Equal(t, Ready, st, "a new subscriber sees the current value")
	assert.Equal(t, 1, v)
}

func TestMutable_SetNeq(t *testing.T) {
	m := NewMutable(true)
	sig := m.Signal()
	cx, woken := countingContext()
	sig.PollChange(cx)
	sig.PollChange(cx)

	assert.False(t, SetNeq(m, true))
	assert.Equal(t, int32(0), woken.Load())
	assert.True(t, SetNeq(m, false))
	assert.Equal(t, int32(1), woken.Load())
}

func TestMutable_CloseDeliversLastValueThenDone(t *testing.T) {
	m := NewMutable(0)
	sig := m.Signal()
	cx, woken := countingContext()
	sig.PollChange(cx)
	sig.PollChange(cx)

	m.Update(func(v int) int { return v + 5 })
	m.Close()
	m.Close()
	assert.Equal(t, int32(1), woken.Load())

	v, st := sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, 5, v)
	_, st = sig.PollChange(cx)
	assert.Equal(t, Done, st)
}

func TestMapAndDedupe(t *testing.T) {
	m := NewMutable(1)
	sig := Dedupe(Map(m.Signal(), func(v int) bool { return v%2 == 0 }))
	cx, _ := countingContext()

	v, st := sig.PollChange(cx)
	require.Equal(t, Ready, st)
	assert.False(t, v)

	m.Set(3)
	_, st = sig.PollChange(cx)
	assert.Equal(t, Pending, st, "odd to odd is not a change after mapping")

	m.Set(4)
	v, st = sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.True(t, v)
}

func TestForEach_DrivenByExecutor(t *testing.T) {
	exec := executor.New()
	m := NewMutable("hello")

	var seen []string
	h := exec.Spawn(ForEach(m.Signal(), func(v string) { seen = append(seen, v) }))
	exec.RunUntilStalled()
	assert.Equal(t, []string{"hello"}, seen)

	m.Set("world")
	exec.RunUntilStalled()
	assert.Equal(t, []string{"hello", "world"}, seen)

	h.Cancel()
	exec.RunUntilStalled()
	m.Set("ignored")
	exec.RunUntilStalled()
	assert.Equal(t, []string{"hello", "world"}, seen)
}

func TestForEach_CompletesWhenDone(t *testing.T) {
	exec := executor.New()
	var got []int
	h := exec.Spawn(ForEach(Always(7), func(v int) { got = append(got, v) }))
	exec.RunUntilStalled()

	assert.Equal(t, []int{7}, got)
	assert.Equal(t, executor.TaskCompleted, h.Task().State())
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int)
	sig := FromChannel(ch)
	cx, woken := countingContext()

	_, st := sig.PollChange(cx)
	assert.Equal(t, Pending, st)

	ch <- 1
	require.Eventually(t, func() bool { return woken.Load() >= 1 }, time.Second, time.Millisecond)
	v, st := sig.PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, 1, v)

	close(ch)
	require.Eventually(t, func() bool {
		_, st := sig.PollChange(cx)
		return st == Done
	}, time.Second, time.Millisecond)
}

func TestUseState(t *testing.T) {
	state, set := UseState("a")
	assert.Equal(t, "a", state.Get())
	set("b")
	assert.Equal(t, "b", state.Get())

	cx, _ := countingContext()
	v, st := state.Signal().PollChange(cx)
	assert.Equal(t, Ready, st)
	assert.Equal(t, "b", v)
}

func TestUseStateReducer(t *testing.T) {
	type action int
	const (
		inc action = iota
		dec
	)
	count, dispatch := UseStateReducer(0, func(s int, a action) int {
		if a == inc {
			return s + 1
		}
		return s - 1
	})

	dispatch(inc)
	dispatch(inc)
	dispatch(dec)
	assert.Equal(t, 1, count.Get())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
