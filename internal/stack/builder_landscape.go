package stack

import "time"

// landscape scrolls horizontally. There is no drop-in stage, so trailing
// tabs need no extra offset on enter.
type landscape struct {
	b *Builder
}

// IsDefaultDiscardDirectionPositive is always true: landscape tabs close by
// swiping up, independent of text direction.
func (v *landscape) IsDefaultDiscardDirectionPositive() bool { return true }

func (v *landscape) ScreenPositionInScrollDirection(t *TabProxy) float64 { return t.X }

func (v *landscape) ScreenSizeInScrollDirection() float64 { return v.b.cfg.Viewport.Width }

func (v *landscape) addTiltAnimation(p *Plan, t *TabProxy, end float64, dur, delay time.Duration) {
	p.addTab(t, PropTiltY, t.TiltY, end, dur, delay)
}

func (v *landscape) enterStack(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	b := v.b
	l := b.cfg.Layout
	initial := l.ScreenToScroll(0)

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
			t.ScrollOffset = slot
			p.addTab(t, PropYInStackOffset, b.cfg.Viewport.Width, 0, enterStackAnimationDuration, 0)
		default:
			t.ScrollOffset = slot
			b.focusedEnterEntries(p, t, focus, spacing)
		}
	}
}

func (v *landscape) tabFocused(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	b := v.b
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		v.addTiltAnimation(p, t, 0, tabFocusedAnimationDuration, 0)
		p.addTab(t, PropDiscardAmount, t.DiscardAmount, 0, tabFocusedAnimationDuration, 0)
		switch {
		case i < focus:
			end := t.ScrollOffset - v.ScreenSizeInScrollDirection() - spacing
			p.addTab(t, PropScrollOffset, t.ScrollOffset, end, tabFocusedAnimationDuration, 0)
		case i > focus:
			delay, distance := b.cascadeDelay(t)
			p.addTab(t, PropYInStackOffset, t.YInStackOffset, t.YInStackOffset+distance, tabFocusedAnimationDuration, delay)
		default:
			b.focusedExitEntries(p, t)
		}
	}
}
