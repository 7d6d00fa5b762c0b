package stack

import "time"

// Fixed-grid overrides. Tabs never overlap, so they hold their slots and fade
// instead of dropping in or sliding under each other; there is no tilt.

func (b *Builder) nonOverlappingEnterStack(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	l := b.cfg.Layout
	slots := liveSlots(tabs)
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		b.seedTab(t, i == focus)
		t.ScrollOffset = l.ScreenToScroll(float64(slots[i]) * spacing)
		if i == focus {
			b.focusedEnterEntries(p, t, focus, spacing)
			continue
		}
		t.Surface.MaxContentHeight = l.MaxTabHeight
		p.addTab(t, PropAlpha, 0, 1, enterStackAnimationDuration, 0)
	}
}

func (b *Builder) nonOverlappingTabFocused(p *Plan, tabs []*TabProxy, focus int, spacing float64) {
	for i, t := range tabs {
		if t.Dying {
			continue
		}
		p.addTab(t, PropDiscardAmount, t.DiscardAmount, 0, tabFocusedAnimationDuration, 0)
		if i == focus {
			b.focusedExitEntries(p, t)
			continue
		}
		var delay time.Duration
		if i > focus {
			delay, _ = b.cascadeDelay(t)
		}
		p.addTab(t, PropAlpha, t.Alpha, 0, tabFocusedAnimationDuration, delay)
	}
}
