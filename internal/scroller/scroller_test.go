package scroller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1700000000, 0)

func TestSpringBackInsideBoundsIsNoop(t *testing.T) {
	s := New()
	assert.False(t, s.SpringBack(0, 50, 0, 0, 0, 100, t0))
	assert.True(t, s.IsFinished())
}

func TestSpringBackReachesBound(t *testing.T) {
	s := New()
	require.True(t, s.SpringBack(0, -30, 0, 0, 0, 100, t0))
	assert.False(t, s.IsFinished())
	assert.Equal(t, 0.0, s.FinalY())

	require.True(t, s.ComputeScrollOffset(t0.Add(SpringBackDuration/2)))
	assert.InDelta(t, -15, s.CurrY(), 1e-9)

	require.True(t, s.ComputeScrollOffset(t0.Add(SpringBackDuration)))
	assert.Equal(t, 0.0, s.CurrY())
	assert.True(t, s.IsFinished())
	assert.False(t, s.ComputeScrollOffset(t0.Add(time.Second)))
}

func TestFlingSnapsAndClamps(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		snap     float64
		want     float64
	}{
		{"no snap", -400, 0, -100},
		{"snaps to grid", -400, 265, 0},
		{"snaps past half", -800, 150, -150},
		{"clamped", -100000, 0, -500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetSnapDistance(tt.snap)
			s.Fling(0, 0, 0, tt.velocity, 0, 0, -500, 0, t0)

			require.False(t, s.IsFinished())
			assert.InDelta(t, tt.want, s.FinalY(), 1e-9)

			s.ComputeScrollOffset(t0.Add(time.Minute))
			assert.InDelta(t, tt.want, s.CurrY(), 1e-9)
			assert.True(t, s.IsFinished())
		})
	}
}

func TestFlingFrictionMultiplier(t *testing.T) {
	fast := New()
	slow := New()
	slow.SetFrictionMultiplier(0.2)

	fast.Fling(0, 0, 0, -100, 0, 0, -10000, 0, t0)
	slow.Fling(0, 0, 0, -100, 0, 0, -10000, 0, t0)

	assert.InDelta(t, -25, fast.FinalY(), 1e-9)
	assert.InDelta(t, -125, slow.FinalY(), 1e-9)
}

func TestFlingBelowThresholdStops(t *testing.T) {
	s := New()
	s.Fling(10, 0, 5, 0, -100, 100, 0, 0, t0)
	assert.True(t, s.IsFinished())
	assert.Equal(t, 10.0, s.FinalX())
}

func TestFlingMonotonic(t *testing.T) {
	s := New()
	s.Fling(0, 0, 2000, 0, 0, 10000, 0, 0, t0)

	prev := 0.0
	for at := t0; !s.IsFinished(); at = at.Add(16 * time.Millisecond) {
		s.ComputeScrollOffset(at)
		assert.GreaterOrEqual(t, s.CurrX(), prev)
		prev = s.CurrX()
	}
	assert.InDelta(t, 500, prev, 1e-9)
}

func TestForceFinished(t *testing.T) {
	s := New()
	s.Fling(0, 0, 0, 2000, 0, 0, 0, 10000, t0)
	s.ComputeScrollOffset(t0.Add(50 * time.Millisecond))
	pos := s.CurrY()

	s.ForceFinished(true)
	assert.True(t, s.IsFinished())
	assert.Equal(t, pos, s.FinalY())
}

func TestSetters(t *testing.T) {
	s := New()
	s.SetFrictionMultiplier(-1)
	assert.Equal(t, 1.0, s.FrictionMultiplier())
	s.SetSnapDistance(-5)
	assert.Zero(t, s.SnapDistance())
}
