package ui

import "tabstack/internal/stack"

// flingVelocity is the scroll velocity of a J/K fling, in units per second.
const flingVelocity = 2400

func (m *AppModel) apply(a action) {
	c := m.Controller
	switch a {
	case actEnterStack:
		if i, ok := c.FocusIndex(); ok {
			c.EnterStack(i)
		} else if c.TabCount() > 0 {
			c.EnterStack(max(c.SelectedIndex(), 0))
		}
	case actFocus:
		if i := c.SelectedIndex(); i >= 0 && i < c.TabCount() {
			c.FocusTab(i)
		}
	case actPrevTab:
		m.selectLive(-1)
	case actNextTab:
		m.selectLive(+1)
	case actViewMore:
		c.ViewMore(c.SelectedIndex())
	case actReachTop:
		c.ReachTop()
	case actScrollBack:
		c.SetScrollTarget(c.ScrollTarget()+c.Spacing(), true, m.now)
	case actScrollForward:
		c.SetScrollTarget(c.ScrollTarget()-c.Spacing(), true, m.now)
	case actFlingBack:
		c.Fling(flingVelocity, m.now)
	case actFlingForward:
		c.Fling(-flingVelocity, m.now)
	case actNewTab:
		m.openTab()
	case actCloseTab:
		m.closeSelected()
	case actRotate:
		m.rotate()
	case actTogglePolicy:
		next := stack.NonOverlapping
		if c.PolicyKind() == stack.NonOverlapping {
			next = stack.Overlapping
		}
		m.settle()
		c.SetPolicy(stack.NewPolicy(next))
	case actToggleDirection:
		next := stack.RightToLeft
		if c.LayoutDirection() == stack.RightToLeft {
			next = stack.LeftToRight
		}
		c.SetLayoutDirection(next)
	case actSwipeBack:
		m.swipeSelected(-1)
	case actSwipeForward:
		m.swipeSelected(+1)
	case actToggleTrace:
		m.Trace.SetVisible(!m.Trace.IsVisible())
		m.traceVersion = 0
	}
	m.logger.Debug("action applied", "action", int(a), "mode", c.Mode(), "sub", c.SubMode())
}

// surface returns a fresh full-screen surface for the current viewport.
func (m *AppModel) surface() *stack.Surface {
	vp := m.Controller.Viewport()
	return &stack.Surface{Width: vp.Width, OriginalContentHeight: vp.Height - vp.ChromeHeight}
}

func (m *AppModel) openTab() {
	id := m.nextID
	m.nextID++
	m.Controller.AddTab(id, m.surface())
}

func (m *AppModel) closeSelected() {
	c := m.Controller
	i := c.SelectedIndex()
	if i < 0 || i >= c.TabCount() {
		return
	}
	t := c.Tabs()[i]
	if t.Dying {
		return
	}
	c.RemoveTab(t.ID, true)
}

// swipeSelected drags the selected tab half the discard range across the
// stack and lets go, which closes it. The pointer is off the canvas so the
// controller falls back to the selected tab.
func (m *AppModel) swipeSelected(dir float64) {
	c := m.Controller
	d := dir * c.Builder().DiscardRange() / 2
	dx, dy := d, 0.0
	if c.Orientation() == stack.Landscape {
		dx, dy = 0, d
	}
	c.Drag(-1, -1, dx, dy, m.now)
	c.OnUpOrCancel(m.now)
}

// selectLive moves the selection to the next live tab in direction step.
func (m *AppModel) selectLive(step int) {
	c := m.Controller
	tabs := c.Tabs()
	for i := c.SelectedIndex() + step; i >= 0 && i < len(tabs); i += step {
		if tabs[i].Dying {
			continue
		}
		c.SetSelectedIndex(i)
		return
	}
}

// settle completes the running animation so a context change starts from
// final values.
func (m *AppModel) settle() {
	if m.Player.Active() {
		m.Player.Finish(m.Controller)
	}
	if !m.Controller.Plan().Empty() {
		m.Controller.FinishTransition()
	}
}

// rotate swaps the viewport axes and the orientation together.
func (m *AppModel) rotate() {
	c := m.Controller
	m.settle()
	vp := c.Viewport()
	vp.Width, vp.Height = vp.Height, vp.Width
	next := stack.Landscape
	if c.Orientation() == stack.Landscape {
		next = stack.Portrait
	}
	c.SetViewport(vp)
	for _, t := range c.Tabs() {
		if t.Surface != nil {
			t.Surface.Width = vp.Width
			t.Surface.OriginalContentHeight = vp.Height - vp.ChromeHeight
		}
	}
	c.SetOrientation(next)
}
