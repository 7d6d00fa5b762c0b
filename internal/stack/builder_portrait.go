package stack

import "time"

// portrait scrolls vertically. Tabs after the focus drop in from the bottom
// edge.
type portrait struct {
	b *Builder
}

// IsDefaultDiscardDirectionPositive follows the reading direction so a close
// swipe heads toward the end of a line.
func (v *portrait) IsDefaultDiscardDirectionPositive() bool {
	return v.b.cfg.Direction != RightToLeft
}

func (v *portrait) ScreenPositionInScrollDirection(t *TabProxy) float64 { return t.Y }

func (v *portrait) ScreenSizeInScrollDirection() float64 { return v.b.cfg.Viewport.Height }

func (v *portrait) addTiltAnimation(p *Plan, t *TabProxy, end float64, dur, delay time.Duration) {
	p.addTab(t, PropTiltX, t.TiltX, end, dur, delay)
}

func (v *portrait) enterStack(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	b := v.b
	l := b.cfg.Layout
	initial := l.ScreenToScroll(0)

	// Push the trailing group below the focused tab so the two don't
	// overlap while the focused tab shrinks.
	trailing := 0.0
	if next := nextLive(tabs, focus); next >= 0 {
		focusOffset := tabs[focus].ScrollOffset
		nextOffset := tabs[next].ScrollOffset
		topSpacing := 0.0
		if focus == 0 {
			topSpacing = b.cfg.Viewport.ChromeHeight
		}
		extraSpace := tabs[focus].ScaledContentHeight() * enterStackExtraSpaceRatio
		trailing = max(focusOffset-nextOffset+topSpacing+extraSpace, 0)
	}

	slots := liveSlots(tabs)
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		b.seedTab(t, i == focus)
		slot := l.ScreenToScroll(float64(slots[i]) * spacing)
		switch {
		case i < focus:
			t.Surface.MaxContentHeight = l.MaxTabHeight
			p.addTab(t, PropScrollOffset, initial, slot, enterStackAnimationDuration, 0)
		case i > focus:
			t.Surface.MaxContentHeight = l.MaxTabHeight
			t.ScrollOffset = slot + trailing
			p.addTab(t, PropYInStackOffset, b.cfg.Viewport.Height, 0, enterStackAnimationDuration, 0)
		default:
			t.ScrollOffset = slot
			b.focusedEnterEntries(p, t, focus, spacing)
			t.YOutOfStack = b.staticTabPosition()
			p.addTab(t, PropYOutOfStack, t.YOutOfStack, 0, enterStackAnimationDuration, 0)
		}
	}
}

func (v *portrait) tabFocused(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	b := v.b
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		v.addTiltAnimation(p, t, 0, tabFocusedAnimationDuration, 0)
		p.addTab(t, PropDiscardAmount, t.DiscardAmount, 0, tabFocusedAnimationDuration, 0)
		switch {
		case i < focus:
			// Leading tabs slide off the top.
			end := t.ScrollOffset - v.ScreenSizeInScrollDirection() - spacing
			p.addTab(t, PropScrollOffset, t.ScrollOffset, end, tabFocusedAnimationDuration, 0)
		case i > focus:
			delay, distance := b.cascadeDelay(t)
			p.addTab(t, PropYInStackOffset, t.YInStackOffset, t.YInStackOffset+distance, tabFocusedAnimationDuration, delay)
		default:
			b.focusedExitEntries(p, t)
			p.addTab(t, PropYOutOfStack, t.YOutOfStack, b.staticTabPosition(), tabFocusedAnimationDuration, 0)
		}
	}
}
