package stack

import "time"

// Scroller is the physics collaborator the controller configures and
// queries. It owns fling and spring integration.
type Scroller interface {
	IsFinished() bool
	// SpringBack animates from (startX, startY) into the given bounds with
	// zero velocity at both ends. It reports whether any motion started.
	SpringBack(startX, startY, minX, minY, maxX, maxY float64, at time.Time) bool
	SetFrictionMultiplier(f float64)
	SetSnapDistance(d float64)
}

// Stepper is implemented by scrollers that expose their position per frame.
type Stepper interface {
	// ComputeScrollOffset advances to at and reports whether the position
	// changed.
	ComputeScrollOffset(at time.Time) bool
	CurrX() float64
	CurrY() float64
}

// Flinger is implemented by scrollers that integrate fling velocity.
type Flinger interface {
	Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY float64, at time.Time)
	ForceFinished(finished bool)
}
