package stack

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownPolicy is returned by ParsePolicyKind.
var ErrUnknownPolicy = errors.New("unknown layout policy")

// PolicyKind names a layout policy.
type PolicyKind int

const (
	Overlapping PolicyKind = iota
	NonOverlapping
)

func (k PolicyKind) String() string {
	switch k {
	case Overlapping:
		return "overlapping"
	case NonOverlapping:
		return "nonoverlapping"
	default:
		return "unknown"
	}
}

// ParsePolicyKind accepts "overlapping" or "nonoverlapping" (a dash or
// underscore in the latter is allowed).
func ParsePolicyKind(s string) (PolicyKind, error) {
	n := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch n {
	case "overlapping", "":
		return Overlapping, nil
	case "nonoverlapping":
		return NonOverlapping, nil
	}
	return Overlapping, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Input is everything a policy needs to lay out the stack.
type Input struct {
	TabCount         int
	NonDyingTabCount int
	Orientation      Orientation
	Viewport         Viewport
}

// Layout is the result of a policy computation. The zero warp makes the
// coordinate mapping the identity.
type Layout struct {
	Spacing            float64
	ScaleAmount        float64
	MaxTabHeight       float64
	FrictionMultiplier float64
	SnapDistance       float64

	extent float64
	warp   float64
}

// VisibleTabHeight is the cropped tab height as drawn: MaxTabHeight at
// ScaleAmount.
func (l Layout) VisibleTabHeight() float64 {
	return l.MaxTabHeight * l.ScaleAmount
}

// ScrollToScreen maps a scroll-space position to the screen. Positions in
// [0, extent] map linearly; beyond either end they compress logarithmically
// with a slope-1 join, so the mapping stays monotonic and invertible.
func (l Layout) ScrollToScreen(s float64) float64 {
	if l.warp <= 0 {
		return s
	}
	switch {
	case s < 0:
		return -l.warp * math.Log1p(-s/l.warp)
	case s > l.extent:
		return l.extent + l.warp*math.Log1p((s-l.extent)/l.warp)
	}
	return s
}

// ScreenToScroll is the inverse of ScrollToScreen.
func (l Layout) ScreenToScroll(x float64) float64 {
	if l.warp <= 0 {
		return x
	}
	switch {
	case x < 0:
		return -l.warp * math.Expm1(-x/l.warp)
	case x > l.extent:
		return l.extent + l.warp*math.Expm1((x-l.extent)/l.warp)
	}
	return x
}

// Policy computes stack geometry. Implementations are pure.
type Policy interface {
	Kind() PolicyKind

	// Layout must not be relied on for TabCount == 0; callers special-case
	// the empty switcher.
	Layout(in Input) Layout

	// EvenOut nudges tab scroll offsets toward even spacing by at most
	// amount and reports whether anything moved.
	EvenOut(tabs []*TabProxy, l Layout, amount float64) bool

	// Pinchable reports whether pinch gestures adjust spacing live.
	Pinchable() bool
}

// NewPolicy returns the policy for k.
func NewPolicy(k PolicyKind) Policy {
	if k == NonOverlapping {
		return nonOverlappingPolicy{}
	}
	return overlappingPolicy{}
}

// baseTabHeight is the height available to a tab below the chrome.
func baseTabHeight(v Viewport) float64 {
	return max(v.Height-v.ChromeHeight, 0)
}
