// Package scroller is a physics scroller for the tab stack: exponential
// friction flings that land on a snap grid, and fixed-duration spring backs
// with zero velocity at both ends.
package scroller

import (
	"math"
	"time"

	"tabstack/internal/stack"
)

const (
	// DefaultFriction is the velocity decay rate, per second, at a friction
	// multiplier of 1.
	DefaultFriction = 4.0

	// SpringBackDuration is how long a spring back takes.
	SpringBackDuration = 250 * time.Millisecond

	// minFlingVelocity is the speed, in px/s, below which a fling stops.
	minFlingVelocity = 20.0
)

type motion int

const (
	idle motion = iota
	flinging
	springing
)

// Scroller integrates one 2-D scroll motion at a time.
type Scroller struct {
	friction           float64
	frictionMultiplier float64
	snapDistance       float64

	motion   motion
	start    time.Time
	duration time.Duration

	startX, startY float64
	finalX, finalY float64
	currX, currY   float64
}

// Compile-time interface compliance check
var (
	_ stack.Scroller = (*Scroller)(nil)
	_ stack.Stepper  = (*Scroller)(nil)
	_ stack.Flinger  = (*Scroller)(nil)
)

// New returns an idle scroller with DefaultFriction.
func New() *Scroller {
	return &Scroller{friction: DefaultFriction, frictionMultiplier: 1}
}

// IsFinished reports whether no motion is in progress.
func (s *Scroller) IsFinished() bool { return s.motion == idle }

// SetFrictionMultiplier scales DefaultFriction. Non-positive values reset it
// to 1.
func (s *Scroller) SetFrictionMultiplier(f float64) {
	if f <= 0 {
		f = 1
	}
	s.frictionMultiplier = f
}

// SetSnapDistance makes flings land on multiples of d. Zero disables
// snapping.
func (s *Scroller) SetSnapDistance(d float64) { s.snapDistance = max(d, 0) }

// FrictionMultiplier returns the current multiplier.
func (s *Scroller) FrictionMultiplier() float64 { return s.frictionMultiplier }

// SnapDistance returns the current snap distance.
func (s *Scroller) SnapDistance() float64 { return s.snapDistance }

// CurrX returns the position from the last ComputeScrollOffset.
func (s *Scroller) CurrX() float64 { return s.currX }

// CurrY returns the position from the last ComputeScrollOffset.
func (s *Scroller) CurrY() float64 { return s.currY }

// FinalX returns where the current motion ends.
func (s *Scroller) FinalX() float64 { return s.finalX }

// FinalY returns where the current motion ends.
func (s *Scroller) FinalY() float64 { return s.finalY }

// ForceFinished stops the motion where it is.
func (s *Scroller) ForceFinished(finished bool) {
	if finished {
		s.motion = idle
		s.finalX, s.finalY = s.currX, s.currY
	}
}

// SpringBack moves from the start point into the bounds. It reports false,
// and stays idle, when the start point is already inside them.
func (s *Scroller) SpringBack(startX, startY, minX, minY, maxX, maxY float64, at time.Time) bool {
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	s.finalX = min(max(startX, minX), maxX)
	s.finalY = min(max(startY, minY), maxY)
	if s.finalX == startX && s.finalY == startY {
		s.motion = idle
		return false
	}
	s.motion = springing
	s.start = at
	s.duration = SpringBackDuration
	return true
}

// Fling starts a decelerating motion clamped to the bounds. The end point is
// snapped to the snap distance when one is set.
func (s *Scroller) Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY float64, at time.Time) {
	k := s.friction * s.frictionMultiplier
	speed := math.Hypot(velocityX, velocityY)
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	if speed <= minFlingVelocity || k <= 0 {
		s.motion = idle
		s.finalX, s.finalY = startX, startY
		return
	}
	s.finalX = s.snap(min(max(startX+velocityX/k, minX), maxX), minX, maxX)
	s.finalY = s.snap(min(max(startY+velocityY/k, minY), maxY), minY, maxY)
	s.motion = flinging
	s.start = at
	s.duration = time.Duration(math.Log(speed/minFlingVelocity) / k * float64(time.Second))
}

func (s *Scroller) snap(v, lo, hi float64) float64 {
	if s.snapDistance <= 0 {
		return v
	}
	return min(max(math.Round(v/s.snapDistance)*s.snapDistance, lo), hi)
}

// ComputeScrollOffset advances to at and reports whether the position
// changed. The call that reaches the end point returns true and leaves the
// scroller finished.
func (s *Scroller) ComputeScrollOffset(at time.Time) bool {
	if s.motion == idle {
		return false
	}
	elapsed := at.Sub(s.start)
	if elapsed >= s.duration || s.duration <= 0 {
		s.currX, s.currY = s.finalX, s.finalY
		s.motion = idle
		return true
	}
	t := float64(elapsed) / float64(s.duration)
	var f float64
	switch s.motion {
	case springing:
		f = smoothstep(t)
	case flinging:
		f = decay(t, s.friction*s.frictionMultiplier*s.duration.Seconds())
	}
	s.currX = s.startX + (s.finalX-s.startX)*f
	s.currY = s.startY + (s.finalY-s.startY)*f
	return true
}

// smoothstep has zero slope at 0 and 1.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// decay is the normalised exponential-friction curve: 0 at t=0, 1 at t=1.
func decay(t, rate float64) float64 {
	if rate <= 0 {
		return t
	}
	return -math.Expm1(-rate*t) / -math.Expm1(-rate)
}
