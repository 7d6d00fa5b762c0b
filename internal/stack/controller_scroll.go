package stack

import (
	"math"
	"time"
)

const (
	minPinchRatio = 0.5
	maxPinchRatio = 2.0

	// evenOutRate is the share of the spacing tabs move per frame while
	// evening out.
	evenOutRate = 0.1

	// dragLockDistance is how far a drag travels before it picks an axis.
	dragLockDistance = 4.0
	// discardCommitRatio is the share of the discard range past which a
	// released swipe closes the tab.
	discardCommitRatio = 0.4
)

type pinchState struct {
	active        bool
	startDistance float64
}

type dragAxis int

const (
	dragUnlocked dragAxis = iota
	dragScroll
	dragDiscard
)

// dragState tracks one drag gesture. Until it locks, movement accumulates in
// along and cross.
type dragState struct {
	axis  dragAxis
	tabID int
	along float64
	cross float64
}

// TabFrame is the per-frame render state of one visible tab.
type TabFrame struct {
	ID           int
	ScrollOffset float64
	X, Y         float64
	Width        float64
	Height       float64
	Scale        float64
	Alpha        float64
	Tilt         float64
	YOffset      float64
	Dying        bool
}

// ScrollBounds returns the scroll offset range: the first tab at the origin
// down to the last live tab at the origin.
func (c *Controller) ScrollBounds() (lo, hi float64) {
	n := c.NonDyingTabCount()
	if n <= 1 {
		return 0, 0
	}
	return -float64(n-1) * c.layout.Spacing, 0
}

func (c *Controller) clampScroll(v float64) float64 {
	lo, hi := c.ScrollBounds()
	return min(max(v, lo), hi)
}

// SetScrollTarget sets the physics destination. With snap the target is then
// snapped to the grid through SpringBack.
func (c *Controller) SetScrollTarget(target float64, snap bool, at time.Time) {
	c.scrollTarget = c.clampScroll(target)
	if snap {
		c.SpringBack(at)
	}
}

// ScrollBy applies a raw drag delta along the scroll axis.
func (c *Controller) ScrollBy(delta float64, at time.Time) {
	if c.mode != ModeStackView {
		return
	}
	if f, ok := c.scroller.(Flinger); ok {
		f.ForceFinished(true)
	}
	c.dragging = true
	c.scrollOffset = c.clampScroll(c.scrollOffset + delta)
	c.SetScrollTarget(c.scrollOffset, false, at)
	c.needsFrame = true
}

// Fling hands a release velocity to the scroller. Scrollers that cannot
// fling get a plain spring back.
func (c *Controller) Fling(velocity float64, at time.Time) {
	if c.mode != ModeStackView {
		return
	}
	c.dragging = false
	f, ok := c.scroller.(Flinger)
	if !ok {
		c.SpringBack(at)
		return
	}
	lo, hi := c.ScrollBounds()
	if c.orientation == Landscape {
		f.Fling(c.scrollOffset, 0, velocity, 0, lo, hi, 0, 0, at)
	} else {
		f.Fling(0, c.scrollOffset, 0, velocity, 0, 0, lo, hi, at)
	}
	c.needsFrame = true
}

// OnPinch spreads or compresses the stack between two fingers. Only
// pinchable policies react; the fixed grid ignores pinch.
func (c *Controller) OnPinch(x0, y0, x1, y1 float64, first bool) {
	if !c.policy.Pinchable() || c.mode != ModeStackView || c.NonDyingTabCount() < 2 {
		return
	}
	d := math.Abs(y1 - y0)
	if c.orientation == Landscape {
		d = math.Abs(x1 - x0)
	}
	if first || !c.pinch.active {
		c.pinch = pinchState{active: true, startDistance: max(d, 1)}
		return
	}
	ratio := min(max(d/c.pinch.startDistance, minPinchRatio), maxPinchRatio)
	spacing := c.layout.Spacing * ratio
	slot := 0
	for _, t := range c.tabs {
		if t.Dying {
			continue
		}
		t.ScrollOffset = c.layout.ScreenToScroll(float64(slot) * spacing)
		slot++
	}
	c.needsFrame = true
}

// Drag routes a raw pointer delta (dx, dy) at (x, y). Once the gesture has
// moved dragLockDistance it locks to one axis: along the scroll axis it
// scrolls the stack, across it swipes the tab under the pointer (or the
// selected tab) toward closing.
func (c *Controller) Drag(x, y, dx, dy float64, at time.Time) {
	if c.mode != ModeStackView || c.pinch.active {
		return
	}
	along, cross := dy, dx
	if c.orientation == Landscape {
		along, cross = dx, dy
	}
	if c.drag.axis == dragUnlocked {
		c.drag.along += along
		c.drag.cross += cross
		if math.Hypot(c.drag.along, c.drag.cross) < dragLockDistance {
			return
		}
		along, cross = c.drag.along, c.drag.cross
		c.drag = dragState{axis: dragScroll}
		if math.Abs(cross) > math.Abs(along) {
			if t := c.tabAt(x, y); t != nil {
				c.drag = dragState{axis: dragDiscard, tabID: t.ID}
			}
		}
		c.logger.Debug("drag locked", "axis", int(c.drag.axis), "tab", c.drag.tabID)
	}

	switch c.drag.axis {
	case dragScroll:
		c.ScrollBy(along, at)
	case dragDiscard:
		t, ok := c.Tab(c.drag.tabID)
		if !ok || t.Dying {
			return
		}
		r := c.builder.DiscardRange()
		t.DiscardAmount = min(max(t.DiscardAmount+cross, -r), r)
		c.dragging = true
		c.needsFrame = true
	}
}

// tabAt returns the topmost live tab covering screen point (x, y), falling
// back to the selected tab.
func (c *Controller) tabAt(x, y float64) *TabProxy {
	c.computeScreenPositions()
	for i := len(c.tabs) - 1; i >= 0; i-- {
		t := c.tabs[i]
		if t.Dying || t.Alpha <= 0 {
			continue
		}
		if x >= t.X && x < t.X+t.ScaledWidth() && y >= t.Y && y < t.Y+t.ScaledContentHeight() {
			return t
		}
	}
	if c.selected >= 0 && c.selected < len(c.tabs) && !c.tabs[c.selected].Dying {
		return c.tabs[c.selected]
	}
	return nil
}

// OnUpOrCancel ends a drag or pinch. A released swipe past
// discardCommitRatio of the discard range closes its tab; a shorter one
// returns the tab to the stack. Otherwise the stack snaps to the grid.
func (c *Controller) OnUpOrCancel(at time.Time) {
	drag := c.drag
	c.drag = dragState{}
	c.dragging = false
	c.pinch = pinchState{}
	if drag.axis == dragDiscard {
		c.releaseDiscard(drag.tabID)
		return
	}
	c.SpringBack(at)
}

func (c *Controller) releaseDiscard(id int) {
	t, ok := c.Tab(id)
	if !ok || t.Dying || t.DiscardAmount == 0 {
		return
	}
	if math.Abs(t.DiscardAmount) >= discardCommitRatio*c.builder.DiscardRange() {
		c.RemoveTab(id, true)
		return
	}
	c.begin(KindUndiscard, -1)
}

// SpringBack snaps the scroll target to the nearest grid line. It only acts
// when the scroller is idle; otherwise the request is dropped until the next
// idle check.
func (c *Controller) SpringBack(at time.Time) bool {
	if !c.scroller.IsFinished() {
		return false
	}
	if len(c.tabs) == 0 || c.layout.Spacing <= 0 {
		return false
	}
	newTarget := c.clampScroll(math.Round(c.scrollTarget/c.layout.Spacing) * c.layout.Spacing)
	if c.orientation == Landscape {
		c.scroller.SpringBack(c.scrollOffset, 0, newTarget, 0, newTarget, 0, at)
	} else {
		c.scroller.SpringBack(0, c.scrollOffset, 0, newTarget, 0, newTarget, at)
	}
	c.SetScrollTarget(newTarget, false, at)
	c.needsFrame = true
	return true
}

// Update is the per-frame tick. It pulls the scroller position, evens out
// tabs when idle and re-derives screen coordinates. It reports whether
// another frame is needed.
func (c *Controller) Update(at time.Time) bool {
	more := false
	if s, ok := c.scroller.(Stepper); ok && s.ComputeScrollOffset(at) {
		pos := s.CurrY()
		if c.orientation == Landscape {
			pos = s.CurrX()
		}
		c.scrollOffset = pos
		if c.scroller.IsFinished() {
			c.scrollTarget = pos
		}
		more = true
	} else if c.shouldSnap() {
		more = c.SpringBack(at)
	}

	if c.mode == ModeStackView && !c.transitionActive() && !c.pinch.active {
		if c.policy.EvenOut(c.tabs, c.layout, c.layout.Spacing*evenOutRate) {
			more = true
		}
	}

	c.computeScreenPositions()
	if c.needsFrame {
		c.needsFrame = false
		more = true
	}
	return more
}

// shouldSnap reports whether an idle, off-grid stack needs a spring back.
// Only policies with a snap distance snap on their own.
func (c *Controller) shouldSnap() bool {
	if c.layout.SnapDistance <= 0 || c.layout.Spacing <= 0 {
		return false
	}
	if c.mode != ModeStackView || c.transitionActive() || c.dragging || c.pinch.active {
		return false
	}
	if !c.scroller.IsFinished() {
		return false
	}
	grid := math.Round(c.scrollOffset/c.layout.Spacing) * c.layout.Spacing
	return math.Abs(c.scrollOffset-c.clampScroll(grid)) >= 0.5
}

// computeScreenPositions derives each tab's screen X/Y from its scroll
// offset, the stack scroll offset and its in-stack displacement.
func (c *Controller) computeScreenPositions() {
	cross := c.viewport.CrossDimension(c.orientation)
	for _, t := range c.tabs {
		stackPos := c.layout.ScrollToScreen(t.ScrollOffset + c.scrollOffset)
		along := stackPos*t.YInStackInfluence + t.YInStackOffset
		if c.orientation == Landscape {
			across := (cross-t.ScaledContentHeight())/2 + t.DiscardAmount
			t.X, t.Y = along, across
			continue
		}
		along += t.YOutOfStack
		across := (cross-t.ScaledWidth())/2 + t.DiscardAmount
		t.X, t.Y = across, along
	}
}

// Frame returns the render state of every visible tab, in display order.
func (c *Controller) Frame() []TabFrame {
	extent := c.viewport.ScrollDimension(c.orientation)
	frames := make([]TabFrame, 0, len(c.tabs))
	for _, t := range c.tabs {
		if t.Alpha <= 0 {
			continue
		}
		along, size := t.Y, t.ScaledContentHeight()
		tilt := t.TiltX
		if c.orientation == Landscape {
			along, size = t.X, t.ScaledWidth()
			tilt = t.TiltY
		}
		if extent > 0 && (along+size <= 0 || along >= extent) {
			continue
		}
		frames = append(frames, TabFrame{
			ID:           t.ID,
			ScrollOffset: t.ScrollOffset,
			X:            t.X,
			Y:            t.Y,
			Width:        t.ScaledWidth(),
			Height:       t.ScaledContentHeight(),
			Scale:        t.Scale,
			Alpha:        t.Alpha,
			Tilt:         tilt,
			YOffset:      t.YInStackOffset + t.YOutOfStack,
			Dying:        t.Dying,
		})
	}
	return frames
}
