package stack

// Surface is the content geometry a TabProxy borrows from the render surface
// it wraps. The engine only writes the presentation fields (max content
// height, toolbar and border values).
type Surface struct {
	Width                 float64
	OriginalContentHeight float64

	// MaxContentHeight crops the content; zero means uncropped.
	MaxContentHeight float64
	ToolbarAlpha     float64
	ToolbarYOffset   float64
	SideBorderScale  float64
	BorderScale      float64
}

// ContentHeight is the original height cropped to MaxContentHeight.
func (s *Surface) ContentHeight() float64 {
	if s.MaxContentHeight > 0 && s.MaxContentHeight < s.OriginalContentHeight {
		return s.MaxContentHeight
	}
	return s.OriginalContentHeight
}

// TabProxy is the animatable state of one tab in the switcher.
type TabProxy struct {
	ID int

	// ScrollOffset is the tab's position along the scroll axis, in scroll
	// space (before the policy's screen warp).
	ScrollOffset float64
	Scale        float64
	Alpha        float64

	// DiscardAmount is swipe-to-close progress across the scroll axis.
	DiscardAmount float64

	// YInStackOffset displaces the tab along the scroll axis on top of its
	// stack position; YInStackInfluence blends how much the stack position
	// applies (0 pins the tab to the origin).
	YInStackOffset    float64
	YInStackInfluence float64
	YOutOfStack       float64

	TiltX float64
	TiltY float64

	// Dying is set once the close animation starts. Dying tabs keep their
	// slot until removed but are excluded from count-dependent layout.
	Dying bool

	Surface *Surface

	// X and Y are the derived screen coordinates from the last Update.
	X, Y float64
}

// NewTabProxy returns a full-size, fully opaque tab. A nil surface gets an
// empty one.
func NewTabProxy(id int, s *Surface) *TabProxy {
	if s == nil {
		s = &Surface{}
	}
	if s.ToolbarAlpha == 0 {
		s.ToolbarAlpha = 1
	}
	if s.BorderScale == 0 {
		s.BorderScale = 1
	}
	return &TabProxy{
		ID:                id,
		Scale:             1,
		Alpha:             1,
		YInStackInfluence: 1,
		Surface:           s,
	}
}

// ResetOffset clears the transient displacement left by a previous
// transition.
func (t *TabProxy) ResetOffset() {
	t.YInStackOffset = 0
	t.YInStackInfluence = 1
	t.YOutOfStack = 0
	t.DiscardAmount = 0
	t.TiltX = 0
	t.TiltY = 0
}

// ScaledContentHeight is the cropped content height at the current scale.
func (t *TabProxy) ScaledContentHeight() float64 {
	return t.Surface.ContentHeight() * t.Scale
}

// ScaledWidth is the content width at the current scale.
func (t *TabProxy) ScaledWidth() float64 {
	return t.Surface.Width * t.Scale
}

// SizeInScrollDirection is the scaled extent of the tab along the scroll
// axis.
func (t *TabProxy) SizeInScrollDirection(o Orientation) float64 {
	if o == Landscape {
		return t.ScaledWidth()
	}
	return t.ScaledContentHeight()
}

// Get reads a tab property. Scene properties read as zero.
func (t *TabProxy) Get(p Property) float64 {
	switch p {
	case PropScrollOffset:
		return t.ScrollOffset
	case PropScale:
		return t.Scale
	case PropAlpha:
		return t.Alpha
	case PropDiscardAmount:
		return t.DiscardAmount
	case PropYInStackOffset:
		return t.YInStackOffset
	case PropYInStackInfluence:
		return t.YInStackInfluence
	case PropYOutOfStack:
		return t.YOutOfStack
	case PropTiltX:
		return t.TiltX
	case PropTiltY:
		return t.TiltY
	case PropMaxContentHeight:
		return t.Surface.MaxContentHeight
	case PropToolbarAlpha:
		return t.Surface.ToolbarAlpha
	case PropToolbarYOffset:
		return t.Surface.ToolbarYOffset
	case PropSideBorderScale:
		return t.Surface.SideBorderScale
	}
	return 0
}

// Set writes a tab property. Scene properties are ignored.
func (t *TabProxy) Set(p Property, v float64) {
	switch p {
	case PropScrollOffset:
		t.ScrollOffset = v
	case PropScale:
		t.Scale = v
	case PropAlpha:
		t.Alpha = v
	case PropDiscardAmount:
		t.DiscardAmount = v
	case PropYInStackOffset:
		t.YInStackOffset = v
	case PropYInStackInfluence:
		t.YInStackInfluence = v
	case PropYOutOfStack:
		t.YOutOfStack = v
	case PropTiltX:
		t.TiltX = v
	case PropTiltY:
		t.TiltY = v
	case PropMaxContentHeight:
		t.Surface.MaxContentHeight = v
	case PropToolbarAlpha:
		t.Surface.ToolbarAlpha = v
	case PropToolbarYOffset:
		t.Surface.ToolbarYOffset = v
	case PropSideBorderScale:
		t.Surface.SideBorderScale = v
	}
}
