package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstack/internal/scroller"
	"tabstack/internal/stack"
)

type recorder map[string]float64

func (r recorder) Apply(target stack.Target, prop stack.Property, v float64) {
	r[target.String()+"/"+prop.String()] = v
}

var t0 = time.Unix(1700000000, 0)

func entry(id int, prop stack.Property, start, end float64, dur, delay time.Duration) stack.Entry {
	return stack.Entry{Target: stack.TabTarget(id), Property: prop, Start: start, End: end, Duration: dur, Delay: delay}
}

func TestAdvanceInterpolates(t *testing.T) {
	p := New(nil)
	p.SetEasing(Linear)
	p.Play(stack.Plan{Entries: []stack.Entry{
		entry(1, stack.PropAlpha, 0, 1, 100*time.Millisecond, 0),
		entry(1, stack.PropScale, 1, 0.5, 100*time.Millisecond, 50*time.Millisecond),
	}}, t0)

	r := recorder{}
	require.True(t, p.Advance(t0.Add(25*time.Millisecond), r))
	assert.InDelta(t, 0.25, r["tab:1/alpha"], 1e-9)
	assert.Equal(t, 1.0, r["tab:1/scale"], "start value held during delay")

	require.True(t, p.Advance(t0.Add(100*time.Millisecond), r))
	assert.Equal(t, 1.0, r["tab:1/alpha"])
	assert.InDelta(t, 0.75, r["tab:1/scale"], 1e-9)

	assert.False(t, p.Advance(t0.Add(150*time.Millisecond), r))
	assert.Equal(t, 0.5, r["tab:1/scale"])
	assert.False(t, p.Active())
}

func TestDecelerate(t *testing.T) {
	assert.Zero(t, Decelerate(0))
	assert.Equal(t, 1.0, Decelerate(1))
	assert.Equal(t, 0.75, Decelerate(0.5))
}

func TestLastWriterWins(t *testing.T) {
	p := New(nil)
	p.SetEasing(Linear)
	p.Play(stack.Plan{Entries: []stack.Entry{
		entry(1, stack.PropAlpha, 0, 1, 100*time.Millisecond, 0),
		entry(2, stack.PropAlpha, 0, 1, 100*time.Millisecond, 0),
	}}, t0)
	p.Play(stack.Plan{Entries: []stack.Entry{
		entry(1, stack.PropAlpha, 1, 0, 100*time.Millisecond, 0),
	}}, t0.Add(50*time.Millisecond))

	r := recorder{}
	p.Advance(t0.Add(100*time.Millisecond), r)
	assert.InDelta(t, 0.5, r["tab:1/alpha"], 1e-9)
	assert.Equal(t, 1.0, r["tab:2/alpha"], "untouched track finishes")

	p.Advance(t0.Add(150*time.Millisecond), r)
	assert.Zero(t, r["tab:1/alpha"])
	assert.False(t, p.Active())
}

func TestFinishJumpsToEnd(t *testing.T) {
	p := New(nil)
	p.Play(stack.Plan{Kind: stack.KindReachTop, Entries: []stack.Entry{
		{Target: stack.SceneTarget, Property: stack.SceneChromeAlpha, Start: 1, End: 0, Duration: time.Second},
	}}, t0)
	assert.Equal(t, stack.KindReachTop, p.Kind())

	r := recorder{}
	p.Finish(r)
	assert.Zero(t, r["scene/chrome_alpha"])
	assert.False(t, p.Active())
	assert.False(t, p.Advance(t0, r))
}

func TestZeroDurationAppliesEnd(t *testing.T) {
	p := New(nil)
	p.Play(stack.Plan{Entries: []stack.Entry{entry(3, stack.PropDiscardAmount, 10, 0, 0, 0)}}, t0)

	r := recorder{}
	assert.False(t, p.Advance(t0, r))
	assert.Zero(t, r["tab:3/discard_amount"])
}

func TestPlaysIntoController(t *testing.T) {
	c := stack.New(scroller.New(), stack.WithPolicy(stack.NewPolicy(stack.NonOverlapping)),
		stack.WithViewport(stack.Viewport{Width: 300, Height: 400}))
	c.AddTab(1, &stack.Surface{Width: 300, OriginalContentHeight: 400})
	c.AddTab(2, &stack.Surface{Width: 300, OriginalContentHeight: 400})

	p := New(nil)
	c.OnTransition(func(plan stack.Plan) { p.Play(plan, t0) })
	c.EnterStack(1)
	require.True(t, p.Active())

	for at := t0; p.Advance(at, c); at = at.Add(16 * time.Millisecond) {
	}
	c.FinishTransition()

	assert.Equal(t, stack.ModeStackView, c.Mode())
	assert.Equal(t, -265.0, c.ScrollOffset())
	assert.Equal(t, 1.0, c.Scene().ChromeAlpha)
	tab, _ := c.Tab(2)
	assert.Equal(t, stack.ScaleMultipleTabs, tab.Scale)
	assert.Equal(t, 400.0, tab.Surface.MaxContentHeight)
}
