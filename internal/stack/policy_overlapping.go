package stack

import "math"

const (
	overlappingMinScale   = 0.5
	overlappingMaxScale   = 0.9
	overlappingSideMargin = 16.0

	// Spacing tuning: at least this fraction of the scroll dimension, and
	// never less than overlappingMinSpacing pixels.
	overlappingSpacingScreen = 0.26
	overlappingMinSpacing    = 40.0
	overlappingSpacingFill   = 0.8
	overlappingEdgeMargin    = 20.0

	// overlappingWarp sets how hard positions beyond either end of the
	// viewport compress, as a fraction of the scroll dimension.
	overlappingWarp = 0.25
)

// overlappingPolicy fans tabs out so they partially cover each other and
// compresses them near the viewport ends.
type overlappingPolicy struct{}

func (overlappingPolicy) Kind() PolicyKind { return Overlapping }

func (overlappingPolicy) Layout(in Input) Layout {
	dim := in.Viewport.ScrollDimension(in.Orientation)
	cross := in.Viewport.CrossDimension(in.Orientation)
	n := float64(max(in.NonDyingTabCount, 1))

	minSpacing := max(dim*overlappingSpacingScreen, overlappingMinSpacing)
	spacing := math.Round(max((dim-overlappingEdgeMargin)/(n*overlappingSpacingFill), minSpacing))

	scale := overlappingMaxScale
	if cross > 0 {
		scale = (cross - 2*overlappingSideMargin) / cross
		scale = min(max(scale, overlappingMinScale), overlappingMaxScale)
	}

	return Layout{
		Spacing:            spacing,
		ScaleAmount:        scale,
		MaxTabHeight:       baseTabHeight(in.Viewport),
		FrictionMultiplier: 1,
		extent:             dim,
		warp:               dim * overlappingWarp,
	}
}

// EvenOut moves every tab toward screenToScroll(i * spacing). The call is
// idempotent once tabs are even.
func (overlappingPolicy) EvenOut(tabs []*TabProxy, l Layout, amount float64) bool {
	if amount <= 0 {
		return false
	}
	changed := false
	slot := 0
	for _, t := range tabs {
		if t.Dying {
			continue
		}
		target := l.ScreenToScroll(float64(slot) * l.Spacing)
		slot++
		delta := target - t.ScrollOffset
		if math.Abs(delta) < 0.5 {
			if delta != 0 {
				t.ScrollOffset = target
				changed = true
			}
			continue
		}
		t.ScrollOffset += math.Copysign(min(math.Abs(delta), amount), delta)
		changed = true
	}
	return changed
}

func (overlappingPolicy) Pinchable() bool { return true }
