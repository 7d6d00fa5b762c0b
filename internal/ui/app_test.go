package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"tabstack/internal/scroller"
	"tabstack/internal/stack"
	"tabstack/internal/telemetry"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T, tabs int) (*appModelAdapter, *testClock) {
	t.Helper()
	ctrl := stack.New(scroller.New(),
		stack.WithPolicy(stack.NewPolicy(stack.NonOverlapping)),
		stack.WithViewport(stack.Viewport{Width: 300, Height: 400}),
	)
	for i := 1; i <= tabs; i++ {
		ctrl.AddTab(i, &stack.Surface{Width: 300, OriginalContentHeight: 400})
	}
	clock := &testClock{now: time.Unix(1000, 0)}
	m := NewAppModel(Options{Controller: ctrl, Clock: clock.Now})
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a, clock
}

// press sends key through the handler and delivers any resulting action.
func press(a *appModelAdapter, key string) {
	_, cmd := a.Update(keyMsg(key))
	if cmd == nil {
		return
	}
	if msg, ok := cmd().(actionMsg); ok {
		a.Update(msg)
	}
}

// settle runs frames one second apart until every animation has finished.
func settle(a *appModelAdapter, clock *testClock) {
	for range 10 {
		clock.now = clock.now.Add(time.Second)
		a.Update(frameMsg(clock.now))
	}
}

func TestApp_EnterStackAndFocus(t *testing.T) {
	a, clock := newTestApp(t, 3)
	if got := a.Controller.Mode(); got != stack.ModeFullScreen {
		t.Fatalf("initial mode = %v, want FullScreen", got)
	}

	press(a, "s")
	if got := a.Controller.Mode(); got != stack.ModeEnteringStack {
		t.Fatalf("after s mode = %v, want EnteringStack", got)
	}
	if !a.Player.Active() {
		t.Error("expected the enter animation to be playing")
	}

	settle(a, clock)
	if got := a.Controller.Mode(); got != stack.ModeStackView {
		t.Fatalf("after settle mode = %v, want StackView", got)
	}
	if a.Player.Active() {
		t.Error("player should be idle after settle")
	}

	press(a, "h")
	if got := a.Controller.SelectedIndex(); got != 1 {
		t.Errorf("selected after h = %d, want 1", got)
	}

	press(a, "enter")
	settle(a, clock)
	if got := a.Controller.Mode(); got != stack.ModeFullScreen {
		t.Fatalf("after enter mode = %v, want FullScreen", got)
	}
	if i, ok := a.Controller.FocusIndex(); !ok || i != 1 {
		t.Errorf("focus = %d, %v; want 1", i, ok)
	}
}

func TestApp_StackKeysInactiveInFullScreen(t *testing.T) {
	a, _ := newTestApp(t, 2)
	press(a, "v")
	press(a, "j")
	if got := a.Controller.Mode(); got != stack.ModeFullScreen {
		t.Errorf("mode = %v, want FullScreen", got)
	}
	if a.Player.Active() {
		t.Error("no animation should start from stack-only keys")
	}
}

func TestApp_CloseTabInStack(t *testing.T) {
	a, clock := newTestApp(t, 3)
	press(a, "s")
	settle(a, clock)

	press(a, "x")
	if got := a.Controller.NonDyingTabCount(); got != 2 {
		t.Errorf("live tabs = %d, want 2", got)
	}
	settle(a, clock)
	if got := a.Controller.TabCount(); got != 2 {
		t.Errorf("tabs after discard = %d, want 2", got)
	}
}

func TestApp_SwipeClosesSelected(t *testing.T) {
	a, clock := newTestApp(t, 3)
	press(a, "s")
	settle(a, clock)
	selected := a.Controller.Tabs()[a.Controller.SelectedIndex()].ID

	press(a, ">")
	if got := a.Controller.Plan().Kind; got != stack.KindDiscard {
		t.Errorf("plan after swipe = %v, want discard", got)
	}
	settle(a, clock)
	if got := a.Controller.TabCount(); got != 2 {
		t.Errorf("tabs after swipe = %d, want 2", got)
	}
	if a.Controller.IndexOf(selected) >= 0 {
		t.Errorf("tab %d still in the stack", selected)
	}
}

func TestApp_CloseThenOpenRemovesClosedTab(t *testing.T) {
	a, clock := newTestApp(t, 3)
	press(a, "s")
	settle(a, clock)

	press(a, "x")
	press(a, "n")
	settle(a, clock)
	if got := a.Controller.TabCount(); got != 3 {
		t.Errorf("tabs = %d, want 3", got)
	}
	if got, live := a.Controller.TabCount(), a.Controller.NonDyingTabCount(); got != live {
		t.Errorf("tabs = %d, live = %d, want equal", got, live)
	}
}

func TestApp_NewTabGetsNextID(t *testing.T) {
	a, _ := newTestApp(t, 2)
	press(a, "n")
	if got := a.Controller.TabCount(); got != 3 {
		t.Fatalf("tabs = %d, want 3", got)
	}
	if got := a.Controller.Tabs()[2].ID; got != 3 {
		t.Errorf("new tab ID = %d, want 3", got)
	}
}

func TestApp_ScrollKeysMoveTarget(t *testing.T) {
	a, clock := newTestApp(t, 3)
	press(a, "s")
	settle(a, clock)
	start := a.Controller.ScrollTarget()

	press(a, "k")
	if got, want := a.Controller.ScrollTarget(), start+a.Controller.Spacing(); got != want {
		t.Errorf("target after k = %v, want %v", got, want)
	}
}

func TestApp_LeaderToggles(t *testing.T) {
	a, _ := newTestApp(t, 2)

	press(a, " ")
	if !a.KeyHandler.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}
	if !strings.Contains(a.View(), "policy") {
		t.Error("leader box should list the policy binding")
	}
	press(a, "p")
	if got := a.Controller.PolicyKind(); got != stack.Overlapping {
		t.Errorf("policy = %v, want overlapping", got)
	}

	press(a, " ")
	press(a, "d")
	if got := a.Controller.LayoutDirection(); got != stack.RightToLeft {
		t.Errorf("direction = %v, want rtl", got)
	}

	press(a, " ")
	press(a, "o")
	if got := a.Controller.Orientation(); got != stack.Landscape {
		t.Errorf("orientation = %v, want landscape", got)
	}
	vp := a.Controller.Viewport()
	if vp.Width != 400 || vp.Height != 300 {
		t.Errorf("viewport = %vx%v, want 400x300", vp.Width, vp.Height)
	}
	if got := a.Controller.Tabs()[0].Surface.Width; got != 400 {
		t.Errorf("surface width = %v, want 400", got)
	}
}

func TestApp_ViewShowsModeAndCards(t *testing.T) {
	a, clock := newTestApp(t, 2)
	press(a, "s")
	settle(a, clock)

	out := a.View()
	if !strings.Contains(out, "StackView") {
		t.Errorf("header should name the mode:\n%s", out)
	}
	if !strings.Contains(out, "Tab 2") {
		t.Errorf("expected a card for the focused tab:\n%s", out)
	}
}

func TestApp_EmptyState(t *testing.T) {
	a, _ := newTestApp(t, 0)
	if !strings.Contains(a.View(), "No tabs") {
		t.Error("expected the empty-state message")
	}
}

func TestApp_TracePanelShowsTransitions(t *testing.T) {
	a, clock := newTestApp(t, 2)
	rec := telemetry.NewRecorder(0)
	a.recorder = rec

	press(a, " ")
	press(a, "t")
	if !a.Trace.IsVisible() {
		t.Fatal("expected the transitions panel to be visible")
	}

	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")
	_, span := tracer.Start(context.Background(), "tabstack.enter_stack")
	span.End()
	clock.now = clock.now.Add(time.Second)
	_, cmd := a.Update(frameMsg(clock.now))
	deliver(a, cmd)

	if !strings.Contains(a.View(), "enter_stack") {
		t.Errorf("panel should list the recorded transition:\n%s", a.View())
	}
}

// deliver runs cmd and feeds every TransitionsUpdateMsg it yields back in.
func deliver(a *appModelAdapter, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(a, c)
		}
	case TransitionsUpdateMsg:
		a.Update(msg)
	}
}
