package stack

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets the layout policy. The default is Overlapping.
func WithPolicy(p Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithOrientation sets the initial orientation. The default is Portrait.
func WithOrientation(o Orientation) Option {
	return func(c *Controller) { c.orientation = o }
}

// WithLayoutDirection sets the text direction used for discard defaults.
func WithLayoutDirection(d LayoutDirection) Option {
	return func(c *Controller) { c.direction = d }
}

// WithViewport sets the switcher size.
func WithViewport(v Viewport) Option {
	return func(c *Controller) { c.viewport = v }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTracer sets the tracer transitions are recorded on. The default is the
// global otel tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// Controller owns the tab sequence, the scroll offset and the active policy,
// and starts plans on mode transitions.
type Controller struct {
	tabs     []*TabProxy
	policy   Policy
	layout   Layout
	builder  *Builder
	scroller Scroller

	orientation Orientation
	direction   LayoutDirection
	viewport    Viewport

	scrollOffset float64
	scrollTarget float64
	chromeAlpha  float64
	chromeOffset float64

	// selected is the tab the tab model considers current; focus is the tab
	// being expanded to or from full screen. Both are -1 when unset.
	selected int
	focus    int

	mode Mode
	sub  SubMode
	plan Plan
	span trace.Span

	pinch      pinchState
	drag       dragState
	dragging   bool
	needsFrame bool

	onTransition func(Plan)
	logger       *slog.Logger
	tracer       trace.Tracer
}

// New returns a controller in ModeIdle driving scroller.
func New(scroller Scroller, opts ...Option) *Controller {
	c := &Controller{
		scroller: scroller,
		policy:   NewPolicy(Overlapping),
		selected: -1,
		focus:    -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("tabstack/stack")
	}
	if !assertf(c.logger, c.scroller != nil, "controller created without a scroller") {
		c.scroller = idleScroller{}
	}
	c.chromeOffset = -c.viewport.ChromeHeight
	c.recomputeLayout()
	return c
}

// OnTransition registers fn to receive every plan the controller starts.
func (c *Controller) OnTransition(fn func(Plan)) { c.onTransition = fn }

func (c *Controller) Mode() Mode                       { return c.mode }
func (c *Controller) SubMode() SubMode                 { return c.sub }
func (c *Controller) Plan() Plan                       { return c.plan }
func (c *Controller) Layout() Layout                   { return c.layout }
func (c *Controller) Builder() *Builder                { return c.builder }
func (c *Controller) Orientation() Orientation         { return c.orientation }
func (c *Controller) LayoutDirection() LayoutDirection { return c.direction }
func (c *Controller) Viewport() Viewport               { return c.viewport }
func (c *Controller) PolicyKind() PolicyKind           { return c.policy.Kind() }
func (c *Controller) ScrollOffset() float64            { return c.scrollOffset }
func (c *Controller) ScrollTarget() float64            { return c.scrollTarget }
func (c *Controller) Spacing() float64                 { return c.layout.Spacing }
func (c *Controller) SelectedIndex() int               { return c.selected }

// ScaleAmount is the policy scale for the live non-dying tab count.
func (c *Controller) ScaleAmount() float64 { return c.layout.ScaleAmount }

// MaxTabHeight is the policy crop height for the live non-dying tab count.
func (c *Controller) MaxTabHeight() float64 { return c.layout.MaxTabHeight }

// FocusIndex returns the focused tab index, if any.
func (c *Controller) FocusIndex() (int, bool) { return c.focus, c.focus >= 0 }

// Scene returns the controller-level animated state.
func (c *Controller) Scene() Scene {
	return Scene{ScrollOffset: c.scrollOffset, ChromeAlpha: c.chromeAlpha, ChromeOffset: c.chromeOffset}
}

// Tabs returns the tab sequence in display order. Callers must not modify
// the slice.
func (c *Controller) Tabs() []*TabProxy { return c.tabs }

// TabCount includes dying tabs.
func (c *Controller) TabCount() int { return len(c.tabs) }

// NonDyingTabCount excludes tabs whose close animation has started.
func (c *Controller) NonDyingTabCount() int {
	n := 0
	for _, t := range c.tabs {
		if !t.Dying {
			n++
		}
	}
	return n
}

// IndexOf returns the sequence index of tab id, or -1.
func (c *Controller) IndexOf(id int) int {
	for i, t := range c.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tab returns the tab with id.
func (c *Controller) Tab(id int) (*TabProxy, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.tabs[i], true
	}
	return nil, false
}

// SetSelectedIndex marks tab i as the current tab of the tab model.
func (c *Controller) SetSelectedIndex(i int) {
	if !assertf(c.logger, i >= 0 && i < len(c.tabs), "selected index %d out of range [0,%d)", i, len(c.tabs)) {
		return
	}
	c.selected = i
	if c.mode == ModeFullScreen {
		c.focus = i
	}
}

// AddTab appends a tab and selects it. The first tab takes the switcher out
// of ModeIdle into ModeFullScreen; in ModeStackView the new tab is animated
// in.
func (c *Controller) AddTab(id int, s *Surface) *TabProxy {
	if i := c.IndexOf(id); i >= 0 {
		assertf(c.logger, false, "tab %d already in stack", id)
		return c.tabs[i]
	}
	t := NewTabProxy(id, s)
	c.tabs = append(c.tabs, t)
	c.selected = len(c.tabs) - 1
	c.recomputeLayout()
	t.ScrollOffset = c.layout.ScreenToScroll(float64(c.NonDyingTabCount()-1) * c.layout.Spacing)

	switch c.mode {
	case ModeIdle:
		c.setMode(ModeFullScreen)
		c.focus = c.selected
	case ModeFullScreen:
		c.focus = c.selected
	case ModeStackView:
		c.applyStackScale()
	}
	if !c.transitionActive() {
		c.ResetAllScrollOffset()
	}
	c.logger.Debug("tab added", "id", id, "count", len(c.tabs), "spacing", c.layout.Spacing)
	if c.mode == ModeStackView {
		c.begin(KindNewTabOpened, c.selected)
	}
	return t
}

// RemoveTab removes tab id. With markDying in the stack view the tab is kept
// while a discard plan plays and is spliced out by FinishTransition or
// FinishDiscard; otherwise it is removed at once.
func (c *Controller) RemoveTab(id int, markDying bool) Plan {
	i := c.IndexOf(id)
	if !assertf(c.logger, i >= 0, "remove of unknown tab %d", id) {
		return Plan{}
	}
	t := c.tabs[i]
	if t.Dying {
		return Plan{}
	}
	if !markDying || c.mode != ModeStackView {
		c.splice(i)
		c.afterStructuralChange()
		return Plan{}
	}

	t.Dying = true
	if c.focus == i {
		c.focus = -1
	}
	if c.selected == i {
		c.selected = c.nearestLiveIndex(i)
	}
	c.recomputeLayout()
	c.applyStackScale()
	c.logger.Debug("tab dying", "id", id, "live", c.NonDyingTabCount())
	p, _ := c.begin(KindDiscard, -1)
	return p
}

// FinishDiscard splices out a dying tab whose close animation completed.
func (c *Controller) FinishDiscard(id int) {
	i := c.IndexOf(id)
	if !assertf(c.logger, i >= 0 && c.tabs[i].Dying, "finish discard of tab %d that is not dying", id) {
		return
	}
	c.splice(i)
	c.afterStructuralChange()
}

// CleanupDyingTabs splices out every dying tab.
func (c *Controller) CleanupDyingTabs() {
	removed := false
	for i := len(c.tabs) - 1; i >= 0; i-- {
		if c.tabs[i].Dying {
			c.splice(i)
			removed = true
		}
	}
	if removed {
		c.afterStructuralChange()
	}
}

// SetOrientation switches orientation, recomputing the layout and resetting
// every scroll offset. Tabs are kept.
func (c *Controller) SetOrientation(o Orientation) {
	if o == c.orientation {
		return
	}
	c.orientation = o
	c.contextChanged()
}

// SetViewport resizes the switcher.
func (c *Controller) SetViewport(v Viewport) {
	if v == c.viewport {
		return
	}
	c.viewport = v
	c.contextChanged()
}

// SetLayoutDirection changes the text direction. Geometry is unaffected.
func (c *Controller) SetLayoutDirection(d LayoutDirection) {
	c.direction = d
	c.recomputeLayout()
}

// SetPolicy swaps the layout policy.
func (c *Controller) SetPolicy(p Policy) {
	c.policy = p
	c.pinch = pinchState{}
	c.contextChanged()
}

// ResetAllScrollOffset puts every tab on its grid slot and anchors the stack
// one tab before the selected one, where the user most likely switches back
// to. The scroll target follows without animation.
func (c *Controller) ResetAllScrollOffset() {
	if len(c.tabs) == 0 {
		c.scrollOffset, c.scrollTarget = 0, 0
		return
	}
	if f, ok := c.scroller.(Flinger); ok {
		f.ForceFinished(true)
	}
	slots := liveSlots(c.tabs)
	for i, t := range c.tabs {
		if slots[i] >= 0 {
			t.ScrollOffset = c.layout.ScreenToScroll(float64(slots[i]) * c.layout.Spacing)
		}
	}
	anchor := 0
	if c.selected > 0 && slots[c.selected] > 0 {
		anchor = slots[c.selected] - 1
	}
	c.scrollOffset = -float64(anchor) * c.layout.Spacing
	c.scrollTarget = c.scrollOffset
	c.needsFrame = true
}

// EnterStack shrinks the full-screen tab at focus into the stack. It
// supersedes an in-flight focus transition.
func (c *Controller) EnterStack(focus int) Plan {
	if !assertf(c.logger, len(c.tabs) > 0, "enter stack with no tabs") || !c.validFocus(focus) {
		return Plan{}
	}
	if !c.mode.canEnterStack() {
		c.logger.Debug("enter stack ignored", "mode", c.mode)
		return Plan{}
	}
	c.selected = focus
	c.ResetAllScrollOffset()
	p, ok := c.begin(KindEnterStack, focus)
	if !ok {
		return p
	}
	c.focus = focus
	c.sub = SubNone
	c.scrollTarget = c.clampScroll(-float64(focus) * c.layout.Spacing)
	c.setMode(ModeEnteringStack)
	return p
}

// FocusTab expands tab index back to full screen.
func (c *Controller) FocusTab(index int) Plan {
	if !assertf(c.logger, len(c.tabs) > 0, "focus with no tabs") || !c.validFocus(index) {
		return Plan{}
	}
	if !c.mode.canFocus() {
		c.logger.Debug("focus ignored", "mode", c.mode)
		return Plan{}
	}
	if f, ok := c.scroller.(Flinger); ok {
		f.ForceFinished(true)
	}
	c.pinch = pinchState{}
	c.drag = dragState{}
	c.dragging = false
	p, ok := c.begin(KindTabFocused, index)
	if !ok {
		return p
	}
	c.selected = index
	c.focus = index
	c.sub = SubNone
	c.setMode(ModeFocusingTab)
	return p
}

// ViewMore reveals more of the tab at from by pushing the following tabs
// away. The plan is empty when from is the last tab.
func (c *Controller) ViewMore(from int) Plan {
	if c.mode != ModeStackView || !c.validFocus(from) {
		return Plan{}
	}
	p, ok := c.begin(KindViewMore, from)
	if ok {
		c.sub = SubViewingMore
	}
	return p
}

// ReachTop packs the tabs above the origin against it.
func (c *Controller) ReachTop() Plan {
	if c.mode != ModeStackView || len(c.tabs) == 0 {
		return Plan{}
	}
	p, ok := c.begin(KindReachTop, -1)
	if ok {
		c.sub = SubReachingTop
	}
	return p
}

// FinishTransition is called by the driver once every running track has
// played. It settles the mode and removes dying tabs, including those whose
// discard plan was superseded by a later transition.
func (c *Controller) FinishTransition() {
	switch c.mode {
	case ModeEnteringStack:
		c.setMode(ModeStackView)
	case ModeFocusingTab:
		c.setMode(ModeFullScreen)
	}
	c.sub = SubNone
	c.plan = Plan{}
	c.endSpan(false)
	c.CleanupDyingTabs()
	c.needsFrame = true
}

// Apply writes an interpolated value. Entries for tabs that no longer exist
// are dropped.
func (c *Controller) Apply(target Target, prop Property, v float64) {
	if target.Kind == TargetScene {
		switch prop {
		case SceneScrollOffset:
			c.scrollOffset = v
		case SceneChromeAlpha:
			c.chromeAlpha = v
		case SceneChromeOffset:
			c.chromeOffset = v
		}
		return
	}
	if t, ok := c.Tab(target.TabID); ok {
		t.Set(prop, v)
	}
}

// Value reads the current value of prop on target.
func (c *Controller) Value(target Target, prop Property) float64 {
	if target.Kind == TargetScene {
		switch prop {
		case SceneScrollOffset:
			return c.scrollOffset
		case SceneChromeAlpha:
			return c.chromeAlpha
		case SceneChromeOffset:
			return c.chromeOffset
		}
		return 0
	}
	if t, ok := c.Tab(target.TabID); ok {
		return t.Get(prop)
	}
	return 0
}

// begin builds and installs a plan. An empty plan is not installed and the
// in-flight one keeps playing.
func (c *Controller) begin(kind Kind, focus int) (Plan, bool) {
	c.computeScreenPositions()
	c.builder.SetScene(c.Scene())
	p := c.builder.Build(kind, c.tabs, focus, c.layout.Spacing)
	if p.Empty() {
		return p, false
	}

	superseded := c.transitionActive()
	c.endSpan(superseded)
	_, c.span = c.tracer.Start(context.Background(), "tabstack."+kind.String(),
		trace.WithAttributes(
			attribute.String("tabstack.mode", c.mode.String()),
			attribute.String("tabstack.policy", c.policy.Kind().String()),
			attribute.String("tabstack.orientation", c.orientation.String()),
			attribute.Int("tabstack.focus", focus),
			attribute.Int("tabstack.tabs", len(c.tabs)),
			attribute.Int("tabstack.entries", p.Len()),
		))
	c.plan = p
	c.needsFrame = true
	c.logger.Debug("transition started", "kind", kind, "focus", focus, "entries", p.Len(), "superseded", superseded)
	if c.onTransition != nil {
		c.onTransition(p)
	}
	return p, true
}

func (c *Controller) endSpan(superseded bool) {
	if c.span == nil {
		return
	}
	c.span.SetAttributes(attribute.Bool("tabstack.superseded", superseded))
	c.span.End()
	c.span = nil
}

func (c *Controller) transitionActive() bool { return !c.plan.Empty() }

func (c *Controller) setMode(m Mode) {
	if m == c.mode {
		return
	}
	c.logger.Debug("mode changed", "from", c.mode, "to", m)
	c.mode = m
}

func (c *Controller) validFocus(i int) bool {
	return assertf(c.logger, i >= 0 && i < len(c.tabs) && !c.tabs[i].Dying,
		"index %d is not a live tab (count %d)", i, len(c.tabs))
}

func (c *Controller) recomputeLayout() {
	c.layout = c.policy.Layout(Input{
		TabCount:         len(c.tabs),
		NonDyingTabCount: c.NonDyingTabCount(),
		Orientation:      c.orientation,
		Viewport:         c.viewport,
	})
	if len(c.tabs) > 0 {
		assertf(c.logger, c.layout.Spacing > 0, "spacing %v with %d tabs", c.layout.Spacing, len(c.tabs))
	}
	c.builder = NewBuilder(BuilderConfig{
		Orientation: c.orientation,
		Direction:   c.direction,
		Policy:      c.policy.Kind(),
		Viewport:    c.viewport,
		Layout:      c.layout,
		Logger:      c.logger,
	})
	c.scroller.SetFrictionMultiplier(c.layout.FrictionMultiplier)
	c.scroller.SetSnapDistance(c.layout.SnapDistance)
}

func (c *Controller) contextChanged() {
	c.recomputeLayout()
	if c.mode == ModeStackView {
		c.applyStackScale()
	}
	c.ResetAllScrollOffset()
	c.computeScreenPositions()
}

// applyStackScale snaps live tabs to the policy scale, e.g. when the second
// tab arrives under the fixed grid.
func (c *Controller) applyStackScale() {
	for _, t := range c.tabs {
		if t.Dying {
			continue
		}
		t.Scale = c.layout.ScaleAmount
		t.Surface.MaxContentHeight = c.layout.MaxTabHeight
	}
}

func (c *Controller) afterStructuralChange() {
	c.recomputeLayout()
	if len(c.tabs) == 0 {
		c.selected, c.focus = -1, -1
		c.sub = SubNone
		c.plan = Plan{}
		c.endSpan(true)
		c.scrollOffset, c.scrollTarget = 0, 0
		c.setMode(ModeIdle)
		return
	}
	switch c.mode {
	case ModeStackView:
		c.applyStackScale()
	case ModeFullScreen:
		c.focus = c.selected
	}
	if !c.transitionActive() {
		c.ResetAllScrollOffset()
	}
}

// splice removes tab i and shifts the selected and focus indices.
func (c *Controller) splice(i int) {
	c.tabs = append(c.tabs[:i], c.tabs[i+1:]...)
	c.selected = shiftIndex(c.selected, i, len(c.tabs))
	if c.focus == i {
		c.focus = -1
	} else {
		c.focus = shiftIndex(c.focus, i, len(c.tabs))
	}
	if c.selected >= 0 && c.tabs[c.selected].Dying {
		c.selected = c.nearestLiveIndex(c.selected)
	}
}

func shiftIndex(idx, removed, n int) int {
	if idx > removed {
		idx--
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// nearestLiveIndex prefers the live tab before i, then the one after.
func (c *Controller) nearestLiveIndex(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !c.tabs[j].Dying {
			return j
		}
	}
	for j := i + 1; j < len(c.tabs); j++ {
		if !c.tabs[j].Dying {
			return j
		}
	}
	return -1
}

// idleScroller stands in when no scroller was injected.
type idleScroller struct{}

func (idleScroller) IsFinished() bool { return true }
func (idleScroller) SpringBack(_, _, _, _, _, _ float64, _ time.Time) bool {
	return false
}
func (idleScroller) SetFrictionMultiplier(float64) {}
func (idleScroller) SetSnapDistance(float64)       {}
