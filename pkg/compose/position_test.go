package compose

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionContext_Basics(t *testing.T) {
	pc := NewPositionContext()
	assert.Equal(t, 0, pc.CurrentIndex())
	assert.Equal(t, 1, pc.Depth())

	pc.Increment()
	pc.Increment()
	pc.PushFrame()
	pc.Increment()
	assert.Equal(t, 3, pc.CurrentIndex())
	assert.Equal(t, "[2 1]", pc.String())

	require.NoError(t, pc.Decrement())
	assert.ErrorIs(t, pc.Decrement(), ErrIndexUnderflow, "the active frame is empty")
	assert.Equal(t, 2, pc.CurrentIndex())
}

func TestPositionContext_ClonesShareCounters(t *testing.T) {
	pc := NewPositionContext()
	pc.Increment()
	clone := pc.Clone()

	clone.Increment()
	assert.Equal(t, 2, pc.CurrentIndex(), "counters are shared")

	clone.PushFrame()
	clone.Increment()
	assert.Equal(t, 1, pc.Depth(), "frame stacks are not")
	assert.Equal(t, 2, pc.CurrentIndex())
	assert.Equal(t, 3, clone.CurrentIndex())
}

func TestPositionContext_DecrementFrom(t *testing.T) {
	pc := NewPositionContext()
	pc.Increment()
	pc.PushFrame()
	pc.Increment()
	pc.PushFrame()

	require.NoError(t, pc.decrementFrom(1))
	assert.Equal(t, "[1 0 0]", pc.String())
	assert.ErrorIs(t, pc.decrementFrom(1), ErrIndexUnderflow)
	assert.Equal(t, 1, pc.CurrentIndex(), "frames below base are never touched")

	pc.truncate(1)
	assert.Equal(t, 1, pc.Depth())
}

// TestPositionContext_IndexInvariant drives random add/remove/push sequences
// and checks the index always equals the number of counted views.
func TestPositionContext_IndexInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 50; run++ {
		pc := NewPositionContext()
		perFrame := []int{0}
		for step := 0; step < 200; step++ {
			switch rng.IntN(4) {
			case 0, 1:
				pc.Increment()
				perFrame[len(perFrame)-1]++
			case 2:
				err := pc.Decrement()
				if perFrame[len(perFrame)-1] == 0 {
					require.ErrorIs(t, err, ErrIndexUnderflow)
				} else {
					require.NoError(t, err)
					perFrame[len(perFrame)-1]--
				}
			case 3:
				pc.PushFrame()
				perFrame = append(perFrame, 0)
			}
			want := 0
			for _, n := range perFrame {
				want += n
			}
			require.Equal(t, want, pc.CurrentIndex(), "run %d step %d", run, step)
		}
	}
}
