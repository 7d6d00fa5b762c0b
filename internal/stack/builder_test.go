package stack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTabs(n int, width, height float64) []*TabProxy {
	tabs := make([]*TabProxy, n)
	for i := range tabs {
		tabs[i] = NewTabProxy(i+1, &Surface{Width: width, OriginalContentHeight: height})
	}
	return tabs
}

func identityBuilder(o Orientation, d LayoutDirection) *Builder {
	return NewBuilder(BuilderConfig{
		Orientation: o,
		Direction:   d,
		Policy:      Overlapping,
		Viewport:    Viewport{Width: 300, Height: 400},
		Layout:      Layout{Spacing: 10, ScaleAmount: 1, MaxTabHeight: 400},
	})
}

func policyBuilder(k PolicyKind, o Orientation, v Viewport, n int) (*Builder, Layout) {
	l := NewPolicy(k).Layout(Input{TabCount: n, NonDyingTabCount: n, Orientation: o, Viewport: v})
	return NewBuilder(BuilderConfig{Orientation: o, Policy: k, Viewport: v, Layout: l}), l
}

func TestReachTopStopsAtFirstGap(t *testing.T) {
	tests := []struct {
		name string
		o    Orientation
		set  func(t *TabProxy, pos float64)
	}{
		{"portrait", Portrait, func(t *TabProxy, pos float64) { t.Y = pos }},
		{"landscape", Landscape, func(t *TabProxy, pos float64) { t.X = pos }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs := makeTabs(3, 10, 10)
			for i, pos := range []float64{0, 10, 25} {
				tt.set(tabs[i], pos)
			}
			p := identityBuilder(tt.o, LeftToRight).Build(KindReachTop, tabs, -1, 10)

			assert.Equal(t, []int{1, 2}, p.TabIDs())
			e, ok := p.Find(TabTarget(2), PropScrollOffset)
			require.True(t, ok)
			assert.Equal(t, 10.0, e.End)
			assert.Equal(t, 400*time.Millisecond, e.Duration)
		})
	}
}

func TestReachTopNothingAtOrigin(t *testing.T) {
	tabs := makeTabs(2, 10, 10)
	tabs[0].Y, tabs[1].Y = 5, 15

	p := identityBuilder(Portrait, LeftToRight).Build(KindReachTop, tabs, -1, 10)
	assert.True(t, p.Empty())
}

func TestViewMore(t *testing.T) {
	tests := []struct {
		name       string
		height     float64
		selected   int
		wantShift  float64
		wantTabIDs []int
	}{
		{"minimum shift", 10, 0, ViewMoreMinSize, []int{2, 3}},
		{"reveals three quarters", 600, 0, 350, []int{2, 3}},
		{"middle tab", 600, 1, 350, []int{3}},
		{"last tab", 600, 2, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs := makeTabs(3, 300, tt.height)
			for i, tab := range tabs {
				tab.ScrollOffset = float64(i) * 100
			}
			p := identityBuilder(Portrait, LeftToRight).Build(KindViewMore, tabs, tt.selected, 100)

			assert.Equal(t, tt.wantTabIDs, p.TabIDs())
			for _, id := range tt.wantTabIDs {
				e, ok := p.Find(TabTarget(id), PropScrollOffset)
				require.True(t, ok)
				assert.Equal(t, e.Start+tt.wantShift, e.End, "tab %d", id)
			}
		})
	}
}

func TestViewMoreNonOverlappingIsEmpty(t *testing.T) {
	b, l := policyBuilder(NonOverlapping, Portrait, Viewport{Width: 300, Height: 400}, 3)
	p := b.Build(KindViewMore, makeTabs(3, 300, 400), 0, l.Spacing)
	assert.True(t, p.Empty())
}

func TestDefaultDiscardDirection(t *testing.T) {
	tests := []struct {
		o    Orientation
		d    LayoutDirection
		want bool
	}{
		{Portrait, LeftToRight, true},
		{Portrait, RightToLeft, false},
		{Landscape, LeftToRight, true},
		{Landscape, RightToLeft, true},
	}
	for _, tt := range tests {
		b := identityBuilder(tt.o, tt.d)
		assert.Equal(t, tt.want, b.IsDefaultDiscardDirectionPositive(), "%s %s", tt.o, tt.d)
	}
}

func TestScreenPrimitives(t *testing.T) {
	tab := NewTabProxy(1, &Surface{Width: 300, OriginalContentHeight: 400})
	tab.X, tab.Y = 12, 34

	p := identityBuilder(Portrait, LeftToRight)
	assert.Equal(t, 34.0, p.ScreenPositionInScrollDirection(tab))
	assert.Equal(t, 400.0, p.ScreenSizeInScrollDirection())
	assert.Equal(t, 300.0, p.DiscardRange())

	l := identityBuilder(Landscape, LeftToRight)
	assert.Equal(t, 12.0, l.ScreenPositionInScrollDirection(tab))
	assert.Equal(t, 300.0, l.ScreenSizeInScrollDirection())
	assert.Equal(t, 400.0, l.DiscardRange())
}

func TestDiscardPlan(t *testing.T) {
	tabs := makeTabs(3, 300, 400)
	for i, tab := range tabs {
		tab.ScrollOffset = float64(i) * 10
	}
	tabs[1].Dying = true

	p := identityBuilder(Portrait, RightToLeft).Build(KindDiscard, tabs, -1, 10)

	e, ok := p.Find(TabTarget(2), PropDiscardAmount)
	require.True(t, ok)
	assert.Equal(t, -300.0, e.End)
	assert.Equal(t, 150*time.Millisecond, e.Duration)

	e, ok = p.Find(TabTarget(2), PropAlpha)
	require.True(t, ok)
	assert.Zero(t, e.End)

	e, ok = p.Find(TabTarget(2), PropTiltX)
	require.True(t, ok)
	assert.Equal(t, -discardMaxTilt, e.End)

	e, ok = p.Find(TabTarget(3), PropScrollOffset)
	require.True(t, ok, "gap behind the dying tab closes")
	assert.Equal(t, 10.0, e.End)

	_, ok = p.Find(TabTarget(1), PropScrollOffset)
	assert.False(t, ok, "first tab already on its slot")
}

func TestDiscardContinuesSwipeDirection(t *testing.T) {
	tabs := makeTabs(2, 300, 400)
	tabs[1].ScrollOffset = 10
	tabs[1].Dying = true
	tabs[1].DiscardAmount = 150

	p := identityBuilder(Landscape, LeftToRight).Build(KindDiscard, tabs, -1, 10)

	e, ok := p.Find(TabTarget(2), PropDiscardAmount)
	require.True(t, ok)
	assert.Equal(t, 400.0, e.End)
	assert.Equal(t, time.Duration(float64(150*time.Millisecond)*(1-150.0/400)), e.Duration)

	_, ok = p.Find(TabTarget(2), PropTiltY)
	assert.True(t, ok)
}

func TestPortraitEnterStack(t *testing.T) {
	v := Viewport{Width: 300, Height: 800, ChromeHeight: 50}
	b, l := policyBuilder(Overlapping, Portrait, v, 10)
	require.Equal(t, 208.0, l.Spacing)

	tabs := makeTabs(10, 300, 1000)
	for i, tab := range tabs {
		tab.ScrollOffset = l.ScreenToScroll(float64(i) * l.Spacing)
	}
	p := b.Build(KindEnterStack, tabs, 0, l.Spacing)
	require.False(t, p.Empty())
	assert.Equal(t, 310*time.Millisecond, p.Duration())

	// Trailing group pushed below the shrinking tab: 0 - 208 + 50 + 1000/4.
	assert.InDelta(t, 208+92, tabs[1].ScrollOffset, 1e-9)
	e, ok := p.Find(TabTarget(2), PropYInStackOffset)
	require.True(t, ok)
	assert.Equal(t, 800.0, e.Start)
	assert.Zero(t, e.End)

	e, ok = p.Find(TabTarget(1), PropYOutOfStack)
	require.True(t, ok)
	assert.Equal(t, 50.0, e.Start)
	assert.Zero(t, e.End)

	e, ok = p.Find(TabTarget(1), PropScale)
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Start)
	assert.Equal(t, l.ScaleAmount, e.End)

	e, ok = p.Find(TabTarget(1), PropMaxContentHeight)
	require.True(t, ok)
	assert.Equal(t, 1000.0, e.Start)
	assert.Equal(t, l.MaxTabHeight, e.End)
	assert.Equal(t, 10*time.Millisecond, e.Delay)

	for _, prop := range []Property{SceneScrollOffset, SceneChromeAlpha, SceneChromeOffset} {
		_, ok := p.Find(SceneTarget, prop)
		assert.True(t, ok, "scene entry %s", prop)
	}
}

func TestPortraitEnterStackLeadingTabsSlideIn(t *testing.T) {
	v := Viewport{Width: 300, Height: 800}
	b, l := policyBuilder(Overlapping, Portrait, v, 3)
	tabs := makeTabs(3, 300, 800)

	p := b.Build(KindEnterStack, tabs, 2, l.Spacing)

	e, ok := p.Find(TabTarget(2), PropScrollOffset)
	require.True(t, ok)
	assert.Equal(t, l.ScreenToScroll(0), e.Start)
	assert.Equal(t, l.ScreenToScroll(l.Spacing), e.End)

	e, ok = p.Find(SceneTarget, SceneScrollOffset)
	require.True(t, ok)
	assert.Equal(t, -2*l.Spacing, e.End)
}

func TestLandscapeEnterStack(t *testing.T) {
	v := Viewport{Width: 1000, Height: 400}
	b, l := policyBuilder(Overlapping, Landscape, v, 3)
	tabs := makeTabs(3, 500, 400)

	p := b.Build(KindEnterStack, tabs, 0, l.Spacing)

	e, ok := p.Find(TabTarget(2), PropYInStackOffset)
	require.True(t, ok)
	assert.Equal(t, 1000.0, e.Start)
	assert.Equal(t, l.ScreenToScroll(l.Spacing), tabs[1].ScrollOffset)

	_, ok = p.Find(TabTarget(1), PropYOutOfStack)
	assert.False(t, ok)
}

func TestPortraitTabFocused(t *testing.T) {
	v := Viewport{Width: 300, Height: 800}
	b, l := policyBuilder(Overlapping, Portrait, v, 3)
	tabs := makeTabs(3, 300, 800)
	for i, tab := range tabs {
		tab.ScrollOffset = float64(i) * l.Spacing
		tab.Y = float64(i) * 200
	}
	b.SetScene(Scene{ScrollOffset: -l.Spacing, ChromeAlpha: 1})

	p := b.Build(KindTabFocused, tabs, 1, l.Spacing)

	e, ok := p.Find(TabTarget(1), PropScrollOffset)
	require.True(t, ok)
	assert.Equal(t, -800-l.Spacing, e.End)

	e, ok = p.Find(TabTarget(3), PropYInStackOffset)
	require.True(t, ok)
	assert.Equal(t, 400.0, e.End)
	assert.Equal(t, 50*time.Millisecond, e.Delay)

	e, ok = p.Find(TabTarget(2), PropScrollOffset)
	require.True(t, ok)
	assert.Equal(t, l.Spacing, e.End)

	e, ok = p.Find(TabTarget(2), PropScale)
	require.True(t, ok)
	assert.Equal(t, 1.0, e.End)

	e, ok = p.Find(SceneTarget, SceneChromeAlpha)
	require.True(t, ok)
	assert.Zero(t, e.End)

	for _, id := range []int{1, 2, 3} {
		_, ok := p.Find(TabTarget(id), PropTiltX)
		assert.True(t, ok, "tab %d tilt reset", id)
	}
}

func TestNonOverlappingEnterStack(t *testing.T) {
	v := Viewport{Width: 300, Height: 400}
	b, l := policyBuilder(NonOverlapping, Portrait, v, 3)
	tabs := makeTabs(3, 300, 400)

	p := b.Build(KindEnterStack, tabs, 1, l.Spacing)

	for i, tab := range tabs {
		assert.Equal(t, float64(i)*l.Spacing, tab.ScrollOffset)
	}
	for _, id := range []int{1, 3} {
		e, ok := p.Find(TabTarget(id), PropAlpha)
		require.True(t, ok, "tab %d", id)
		assert.Zero(t, e.Start)
		assert.Equal(t, 1.0, e.End)
	}
	_, ok := p.Find(TabTarget(3), PropYInStackOffset)
	assert.False(t, ok, "grid tabs do not drop in")
	_, ok = p.Find(SceneTarget, SceneScrollOffset)
	assert.True(t, ok)
}

func TestNonOverlappingTabFocused(t *testing.T) {
	v := Viewport{Width: 300, Height: 400}
	b, l := policyBuilder(NonOverlapping, Portrait, v, 3)
	tabs := makeTabs(3, 300, 400)
	tabs[2].Y = 300

	p := b.Build(KindTabFocused, tabs, 1, l.Spacing)

	e, ok := p.Find(TabTarget(1), PropAlpha)
	require.True(t, ok)
	assert.Zero(t, e.End)
	assert.Zero(t, e.Delay)

	e, ok = p.Find(TabTarget(3), PropAlpha)
	require.True(t, ok)
	assert.Equal(t, 25*time.Millisecond, e.Delay)

	_, ok = p.Find(TabTarget(1), PropTiltX)
	assert.False(t, ok)
}

func TestNewTabOpened(t *testing.T) {
	b, l := policyBuilder(Overlapping, Portrait, Viewport{Width: 300, Height: 800}, 3)
	tabs := makeTabs(3, 300, 800)

	p := b.Build(KindNewTabOpened, tabs, 2, l.Spacing)

	e, ok := p.Find(TabTarget(3), PropAlpha)
	require.True(t, ok)
	assert.Zero(t, e.Start)
	assert.Equal(t, 1.0, e.End)

	assert.Zero(t, tabs[2].ScrollOffset, "building leaves tabs untouched")
	e, ok = p.Find(TabTarget(3), PropScrollOffset)
	require.True(t, ok, "new tab jumps to its slot")
	assert.Equal(t, l.ScreenToScroll(2*l.Spacing), e.End)
	assert.Zero(t, e.Duration)

	e, ok = p.Find(TabTarget(2), PropScrollOffset)
	require.True(t, ok, "existing tab moves to its slot")
	assert.Equal(t, l.ScreenToScroll(l.Spacing), e.End)
}

func TestBuildRejectsBadInput(t *testing.T) {
	b := identityBuilder(Portrait, LeftToRight)

	assert.True(t, b.Build(KindEnterStack, nil, 0, 10).Empty())
	assert.True(t, b.Build(KindEnterStack, makeTabs(2, 10, 10), 0, 0).Empty())
	assert.True(t, b.Build(KindTabFocused, makeTabs(2, 10, 10), 5, 10).Empty())
	assert.True(t, b.Build(KindEnterStack, makeTabs(2, 10, 10), -1, 10).Empty())
}

// entriesFor returns every entry of p that targets tab id.
func entriesFor(p Plan, id int) []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Target == TabTarget(id) {
			out = append(out, e)
		}
	}
	return out
}

func TestBuildersSkipDyingTabs(t *testing.T) {
	v := Viewport{Width: 300, Height: 400}
	tests := []struct {
		name   string
		policy PolicyKind
		kind   Kind
		focus  int
	}{
		{"overlapping enter stack", Overlapping, KindEnterStack, 0},
		{"fixed grid enter stack", NonOverlapping, KindEnterStack, 0},
		{"overlapping tab focused", Overlapping, KindTabFocused, 0},
		{"fixed grid tab focused", NonOverlapping, KindTabFocused, 0},
		{"view more", Overlapping, KindViewMore, 0},
		{"reach top", Overlapping, KindReachTop, 0},
		{"new tab opened", Overlapping, KindNewTabOpened, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, l := policyBuilder(tt.policy, Portrait, v, 3)
			tabs := makeTabs(4, 300, 400)
			tabs[1].Dying = true
			tabs[1].Alpha = 0.3
			tabs[1].DiscardAmount = 120

			p := b.Build(tt.kind, tabs, tt.focus, l.Spacing)

			assert.Empty(t, entriesFor(p, 2))
			assert.Equal(t, 0.3, tabs[1].Alpha, "dying tab keeps its fade")
			assert.Equal(t, 120.0, tabs[1].DiscardAmount)
		})
	}
}

func TestEnterStackUsesLiveSlots(t *testing.T) {
	b, l := policyBuilder(NonOverlapping, Portrait, Viewport{Width: 300, Height: 400}, 3)
	tabs := makeTabs(4, 300, 400)
	tabs[1].Dying = true

	b.Build(KindEnterStack, tabs, 0, l.Spacing)

	assert.Equal(t, l.Spacing, tabs[2].ScrollOffset)
	assert.Equal(t, 2*l.Spacing, tabs[3].ScrollOffset)
}

func TestViewMoreSkipsDyingNeighbour(t *testing.T) {
	b := identityBuilder(Portrait, LeftToRight)
	tabs := makeTabs(3, 300, 400)
	tabs[0].ScrollOffset, tabs[1].ScrollOffset, tabs[2].ScrollOffset = 0, 10, 20
	tabs[2].Dying = true

	assert.True(t, b.Build(KindViewMore, tabs, 1, 10).Empty(), "no live tab after the selection")
}

func TestUndiscardReturnsSwipedTabs(t *testing.T) {
	b := identityBuilder(Portrait, LeftToRight)
	tabs := makeTabs(3, 300, 400)
	tabs[1].DiscardAmount = -40

	p := b.Build(KindUndiscard, tabs, -1, 10)

	e, ok := p.Find(TabTarget(2), PropDiscardAmount)
	require.True(t, ok)
	assert.Equal(t, -40.0, e.Start)
	assert.Zero(t, e.End)
	assert.Equal(t, undiscardAnimationDuration, e.Duration)
	_, ok = p.Find(TabTarget(2), PropTiltX)
	assert.True(t, ok)
	assert.Empty(t, entriesFor(p, 1))
}
