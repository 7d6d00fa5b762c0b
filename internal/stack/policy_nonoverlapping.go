package stack

import "math"

const (
	// ScaleSingleTab and ScaleMultipleTabs are the two scale levels of the
	// fixed grid.
	ScaleSingleTab    = 0.80
	ScaleMultipleTabs = 0.60

	// nonOverlappingGap keeps tab borders apart regardless of scale.
	nonOverlappingGap = 25.0

	nonOverlappingFriction = 0.2
)

// nonOverlappingPolicy lays tabs out on a fixed grid with linear scrolling.
type nonOverlappingPolicy struct{}

func (nonOverlappingPolicy) Kind() PolicyKind { return NonOverlapping }

func (nonOverlappingPolicy) Layout(in Input) Layout {
	dim := in.Viewport.ScrollDimension(in.Orientation)
	single := in.NonDyingTabCount <= 1

	scale := ScaleMultipleTabs
	maxHeight := baseTabHeight(in.Viewport)
	if single {
		scale = ScaleSingleTab
		// Keep the drawn crop height constant across the 1<->2 tab jump.
		maxHeight *= ScaleMultipleTabs / ScaleSingleTab
	}

	return Layout{
		Spacing:            math.Round(dim*scale + nonOverlappingGap),
		ScaleAmount:        scale,
		MaxTabHeight:       maxHeight,
		FrictionMultiplier: nonOverlappingFriction,
		// Snap on the steady-state multi-tab grid.
		SnapDistance: math.Round(dim*ScaleMultipleTabs + nonOverlappingGap),
	}
}

// EvenOut is a no-op: grid positions are always even.
func (nonOverlappingPolicy) EvenOut([]*TabProxy, Layout, float64) bool { return false }

func (nonOverlappingPolicy) Pinchable() bool { return false }
