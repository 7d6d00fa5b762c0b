package stack

import (
	"log/slog"
	"math"
	"time"
)

const (
	enterStackAnimationDuration    = 300 * time.Millisecond
	enterStackResizeDelay          = 10 * time.Millisecond
	enterStackBorderAlphaDuration  = 200 * time.Millisecond
	enterStackToolbarAlphaDuration = 100 * time.Millisecond
	enterStackToolbarAlphaDelay    = 100 * time.Millisecond

	tabFocusedAnimationDuration    = 400 * time.Millisecond
	tabFocusedYStackDuration       = 200 * time.Millisecond
	tabFocusedToolbarAlphaDuration = 250 * time.Millisecond
	tabFocusedBorderAlphaDuration  = 200 * time.Millisecond
	tabFocusedMaxDelay             = 100 * time.Millisecond

	viewMoreAnimationDuration = 400 * time.Millisecond
	reachTopAnimationDuration = 400 * time.Millisecond

	discardAnimationDuration   = 150 * time.Millisecond
	undiscardAnimationDuration = 150 * time.Millisecond
	tabOpenedAnimationDuration = 300 * time.Millisecond

	chromeFadeDuration  = 200 * time.Millisecond
	chromeSlideDuration = 300 * time.Millisecond

	// ViewMoreMinSize is the smallest shift a view-more nudge applies.
	ViewMoreMinSize = 200.0
	// ViewMoreSizeRatio is the share of the selected tab's content revealed.
	ViewMoreSizeRatio = 0.75

	// enterStackExtraSpaceRatio spaces the trailing group below the focused
	// tab on portrait enter.
	enterStackExtraSpaceRatio = 0.25

	borderTopOpaqueHeight = 8.0

	// Tilt applied to discarded tabs, in degrees per unit of discard range.
	discardMaxTilt = 15.0
)

// Scene is the controller-level state plans animate alongside tabs.
type Scene struct {
	ScrollOffset float64
	ChromeAlpha  float64
	ChromeOffset float64
}

// variant holds the orientation-specific primitives. The two
// implementations, portrait and landscape, are the only ones; the unexported
// methods keep the set closed.
type variant interface {
	IsDefaultDiscardDirectionPositive() bool
	ScreenPositionInScrollDirection(t *TabProxy) float64
	ScreenSizeInScrollDirection() float64
	addTiltAnimation(p *Plan, t *TabProxy, end float64, dur, delay time.Duration)

	enterStack(p *Plan, tabs []*TabProxy, focus int, spacing float64)
	tabFocused(p *Plan, tabs []*TabProxy, focus int, spacing float64)
}

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	Orientation Orientation
	Direction   LayoutDirection
	Policy      PolicyKind
	Viewport    Viewport
	Layout      Layout
	Logger      *slog.Logger
}

// Builder produces animation plans for one orientation and policy.
type Builder struct {
	cfg     BuilderConfig
	scene   Scene
	variant variant
}

// NewBuilder returns a builder for cfg.
func NewBuilder(cfg BuilderConfig) *Builder {
	b := &Builder{cfg: cfg, scene: Scene{ChromeAlpha: 1}}
	switch cfg.Orientation {
	case Landscape:
		b.variant = &landscape{b: b}
	default:
		b.variant = &portrait{b: b}
	}
	return b
}

// SetScene records the controller state scene entries start from.
func (b *Builder) SetScene(s Scene) { b.scene = s }

// Orientation returns the orientation the builder was made for.
func (b *Builder) Orientation() Orientation { return b.cfg.Orientation }

// IsDefaultDiscardDirectionPositive reports whether a close swipe with no
// direction of its own goes toward positive coordinates.
func (b *Builder) IsDefaultDiscardDirectionPositive() bool {
	return b.variant.IsDefaultDiscardDirectionPositive()
}

// ScreenPositionInScrollDirection is t's screen coordinate on the scroll
// axis.
func (b *Builder) ScreenPositionInScrollDirection(t *TabProxy) float64 {
	return b.variant.ScreenPositionInScrollDirection(t)
}

// ScreenSizeInScrollDirection is the viewport extent on the scroll axis.
func (b *Builder) ScreenSizeInScrollDirection() float64 {
	return b.variant.ScreenSizeInScrollDirection()
}

// DiscardRange is the swipe distance that fully discards a tab.
func (b *Builder) DiscardRange() float64 {
	return b.cfg.Viewport.CrossDimension(b.cfg.Orientation)
}

// Build returns the plan for kind. focusIndex is the focused tab for
// EnterStack, TabFocused and NewTabOpened, and the selected tab for ViewMore;
// other kinds ignore it. Building only resets transient per-tab state.
func (b *Builder) Build(kind Kind, tabs []*TabProxy, focusIndex int, spacing float64) Plan {
	p := Plan{Kind: kind}
	if !assertf(b.cfg.Logger, len(tabs) > 0, "%s requested with no tabs", kind) {
		return p
	}
	if !assertf(b.cfg.Logger, spacing > 0, "%s requested with spacing %v", kind, spacing) {
		return p
	}

	switch kind {
	case KindEnterStack:
		if !b.validFocus(kind, tabs, focusIndex) {
			return p
		}
		if b.cfg.Policy == NonOverlapping {
			b.nonOverlappingEnterStack(&p, tabs, focusIndex, spacing)
		} else {
			b.variant.enterStack(&p, tabs, focusIndex, spacing)
		}
	case KindTabFocused:
		if !b.validFocus(kind, tabs, focusIndex) {
			return p
		}
		if b.cfg.Policy == NonOverlapping {
			b.nonOverlappingTabFocused(&p, tabs, focusIndex, spacing)
		} else {
			b.variant.tabFocused(&p, tabs, focusIndex, spacing)
		}
	case KindViewMore:
		if !b.validFocus(kind, tabs, focusIndex) {
			return p
		}
		if b.cfg.Policy == NonOverlapping {
			// Grid tabs never cover each other; nothing to reveal.
			return p
		}
		b.viewMore(&p, tabs, focusIndex)
	case KindReachTop:
		b.reachTop(&p, tabs)
	case KindDiscard:
		b.discard(&p, tabs, spacing)
	case KindUndiscard:
		b.undiscard(&p, tabs)
	case KindNewTabOpened:
		if !b.validFocus(kind, tabs, focusIndex) {
			return p
		}
		b.newTabOpened(&p, tabs, focusIndex, spacing)
	default:
		assertf(b.cfg.Logger, false, "unknown plan kind %d", int(kind))
	}
	return p
}

// liveSlots maps each tab to its grid slot counting only live tabs. Dying
// tabs map to -1: their discard tracks own them until they are spliced out.
func liveSlots(tabs []*TabProxy) []int {
	slots := make([]int, len(tabs))
	n := 0
	for i, t := range tabs {
		if t.Dying {
			slots[i] = -1
			continue
		}
		slots[i] = n
		n++
	}
	return slots
}

// nextLive returns the index of the first live tab after i, or -1.
func nextLive(tabs []*TabProxy, i int) int {
	for j := i + 1; j < len(tabs); j++ {
		if !tabs[j].Dying {
			return j
		}
	}
	return -1
}

func (b *Builder) validFocus(kind Kind, tabs []*TabProxy, i int) bool {
	return assertf(b.cfg.Logger, i >= 0 && i < len(tabs), "%s focus index %d out of range [0,%d)", kind, i, len(tabs))
}

// seedTab puts t in its steady stack appearance before enter-stack entries
// are added.
func (b *Builder) seedTab(t *TabProxy, focused bool) {
	t.ResetOffset()
	t.Scale = b.cfg.Layout.ScaleAmount
	t.Alpha = 1
	t.Surface.BorderScale = 1
	if focused {
		t.Surface.ToolbarAlpha = 1
	} else {
		t.Surface.ToolbarAlpha = 0
	}
}

func (b *Builder) toolbarOffsetToLineUpWithBorder() float64 {
	return max(b.cfg.Viewport.ChromeHeight-borderTopOpaqueHeight, 0)
}

func (b *Builder) staticTabPosition() float64 {
	return b.cfg.Viewport.ChromeHeight
}

// focusedEnterEntries shrinks the focused tab from full screen into the stack
// and retargets the scene onto it.
func (b *Builder) focusedEnterEntries(p *Plan, t *TabProxy, focus int, spacing float64) {
	l := b.cfg.Layout
	p.addTab(t, PropMaxContentHeight, t.Surface.OriginalContentHeight, l.MaxTabHeight, enterStackAnimationDuration, enterStackResizeDelay)
	p.addTab(t, PropYInStackInfluence, 0, 1, enterStackBorderAlphaDuration, 0)
	p.addTab(t, PropScale, 1, l.ScaleAmount, enterStackBorderAlphaDuration, 0)
	p.addTab(t, PropToolbarYOffset, 0, b.toolbarOffsetToLineUpWithBorder(), enterStackBorderAlphaDuration, 0)
	p.addTab(t, PropSideBorderScale, 0, 1, enterStackBorderAlphaDuration, 0)
	p.addTab(t, PropToolbarAlpha, 1, 0, enterStackToolbarAlphaDuration, enterStackToolbarAlphaDelay)

	p.addScene(SceneScrollOffset, b.scene.ScrollOffset, -float64(focus)*spacing, enterStackAnimationDuration, 0)
	p.addScene(SceneChromeAlpha, b.scene.ChromeAlpha, 1, chromeFadeDuration, 0)
	p.addScene(SceneChromeOffset, b.scene.ChromeOffset, 0, chromeSlideDuration, 0)
}

// focusedExitEntries grows the focused tab back to full screen.
func (b *Builder) focusedExitEntries(p *Plan, t *TabProxy) {
	p.addTab(t, PropScrollOffset, t.ScrollOffset, -b.scene.ScrollOffset, tabFocusedAnimationDuration, 0)
	p.addTab(t, PropScale, t.Scale, 1, tabFocusedAnimationDuration, 0)
	p.addTab(t, PropAlpha, t.Alpha, 1, tabFocusedAnimationDuration, 0)
	p.addTab(t, PropYInStackInfluence, t.YInStackInfluence, 0, tabFocusedYStackDuration, 0)
	p.addTab(t, PropMaxContentHeight, t.Surface.MaxContentHeight, t.Surface.OriginalContentHeight, tabFocusedAnimationDuration, 0)
	p.addTab(t, PropToolbarAlpha, t.Surface.ToolbarAlpha, 1, tabFocusedToolbarAlphaDuration, 0)
	p.addTab(t, PropToolbarYOffset, t.Surface.ToolbarYOffset, 0, tabFocusedBorderAlphaDuration, 0)
	p.addTab(t, PropSideBorderScale, t.Surface.SideBorderScale, 0, tabFocusedBorderAlphaDuration, 0)

	p.addScene(SceneChromeAlpha, b.scene.ChromeAlpha, 0, chromeFadeDuration, 0)
	p.addScene(SceneChromeOffset, b.scene.ChromeOffset, -b.cfg.Viewport.ChromeHeight, chromeSlideDuration, 0)
}

// cascadeDelay staggers tabs leaving toward the far edge: the more of the
// viewport a tab still has to cross, the later it starts.
func (b *Builder) cascadeDelay(t *TabProxy) (delay time.Duration, distance float64) {
	extent := b.variant.ScreenSizeInScrollDirection()
	if extent <= 0 {
		return 0, 0
	}
	pos := b.variant.ScreenPositionInScrollDirection(t)
	distance = min(max(extent-pos, 0), extent)
	delay = time.Duration(float64(tabFocusedMaxDelay) * distance / extent)
	return delay, distance
}

// viewMore shifts every tab after selected so more of selected shows.
func (b *Builder) viewMore(p *Plan, tabs []*TabProxy, selected int) {
	next := nextLive(tabs, selected)
	if next < 0 {
		return
	}
	sel := tabs[selected]
	offset := sel.ScrollOffset - tabs[next].ScrollOffset +
		sel.SizeInScrollDirection(b.cfg.Orientation)*ViewMoreSizeRatio
	offset = max(ViewMoreMinSize, offset)
	for _, t := range tabs[next:] {
		if t.Dying {
			continue
		}
		p.addTab(t, PropScrollOffset, t.ScrollOffset, t.ScrollOffset+offset, viewMoreAnimationDuration, 0)
	}
}

// reachTop packs the leading tabs against the origin. It walks from the
// first tab, stopping at the first one already past its packed position.
func (b *Builder) reachTop(p *Plan, tabs []*TabProxy) {
	screenTarget := 0.0
	for _, t := range tabs {
		if t.Dying {
			continue
		}
		if b.variant.ScreenPositionInScrollDirection(t) > screenTarget {
			break
		}
		p.addTab(t, PropScrollOffset, t.ScrollOffset, b.cfg.Layout.ScreenToScroll(screenTarget), reachTopAnimationDuration, 0)
		screenTarget += t.SizeInScrollDirection(b.cfg.Orientation)
	}
}

// discard throws dying tabs off across the scroll axis and closes the gaps
// they leave.
func (b *Builder) discard(p *Plan, tabs []*TabProxy, spacing float64) {
	l := b.cfg.Layout
	discardRange := b.DiscardRange()
	slot := 0
	for _, t := range tabs {
		if t.Dying {
			amount := t.DiscardAmount
			dir := math.Copysign(1, amount)
			if amount == 0 && !b.variant.IsDefaultDiscardDirectionPositive() {
				dir = -1
			}
			if discardRange <= 0 {
				continue
			}
			progress := min(math.Abs(amount)/discardRange, 1)
			dur := time.Duration(float64(discardAnimationDuration) * (1 - progress))
			p.addTab(t, PropDiscardAmount, amount, dir*discardRange, dur, 0)
			p.addTab(t, PropAlpha, t.Alpha, 0, dur, 0)
			b.variant.addTiltAnimation(p, t, dir*discardMaxTilt, dur, 0)
			continue
		}
		if t.DiscardAmount != 0 {
			p.addTab(t, PropDiscardAmount, t.DiscardAmount, 0, undiscardAnimationDuration, 0)
		}
		if t.Scale != l.ScaleAmount {
			p.addTab(t, PropScale, t.Scale, l.ScaleAmount, discardAnimationDuration, 0)
		}
		target := l.ScreenToScroll(float64(slot) * spacing)
		if math.Abs(t.ScrollOffset-target) > 1 {
			p.addTab(t, PropScrollOffset, t.ScrollOffset, target, discardAnimationDuration, 0)
		}
		slot++
	}
}

// newTabOpened fades the new tab in at its slot and makes room for it.
func (b *Builder) newTabOpened(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	l := b.cfg.Layout
	slots := liveSlots(tabs)
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		target := l.ScreenToScroll(float64(slots[i]) * spacing)
		if i == focus {
			if t.ScrollOffset != target {
				p.addTab(t, PropScrollOffset, t.ScrollOffset, target, 0, 0)
			}
			p.addTab(t, PropAlpha, 0, 1, tabOpenedAnimationDuration, 0)
			p.addTab(t, PropScale, 1, l.ScaleAmount, tabOpenedAnimationDuration, 0)
			continue
		}
		if math.Abs(t.ScrollOffset-target) > 1 {
			p.addTab(t, PropScrollOffset, t.ScrollOffset, target, tabOpenedAnimationDuration, 0)
		}
	}
}

// undiscard returns swiped live tabs to the stack after a cancelled close.
func (b *Builder) undiscard(p *Plan, tabs []*TabProxy) {
	for _, t := range tabs {
		if t.Dying || t.DiscardAmount == 0 {
			continue
		}
		p.addTab(t, PropDiscardAmount, t.DiscardAmount, 0, undiscardAnimationDuration, 0)
		b.variant.addTiltAnimation(p, t, 0, undiscardAnimationDuration, 0)
	}
}
