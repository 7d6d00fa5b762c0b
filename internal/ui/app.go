package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabstack/internal/player"
	"tabstack/internal/stack"
	"tabstack/internal/telemetry"
)

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures NewAppModel.
type Options struct {
	Controller *stack.Controller
	Player     *player.Player
	Recorder   *telemetry.Recorder // optional; enables the transitions panel
	Logger     *slog.Logger
	Clock      func() time.Time
	// FrameInterval defaults to DefaultFrameInterval.
	FrameInterval time.Duration
}

// AppModel is the root model of the switcher demo. It owns no geometry: key
// bindings become controller calls, and each frame advances the player and
// the controller before the stack is drawn.
type AppModel struct {
	Controller *stack.Controller
	Player     *player.Player
	KeyHandler *KeyHandler
	Trace      *TraceView

	recorder      *telemetry.Recorder
	traceVersion  uint64
	logger        *slog.Logger
	clock         func() time.Time
	frameInterval time.Duration

	now     time.Time
	ticking bool
	nextID  int
	width   int
	height  int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model and routes every plan the
// controller starts into the player.
func NewAppModel(opts Options) *AppModel {
	m := &AppModel{
		Controller:    opts.Controller,
		Player:        opts.Player,
		Trace:         NewTraceView(),
		recorder:      opts.Recorder,
		logger:        opts.Logger,
		clock:         opts.Clock,
		frameInterval: opts.FrameInterval,
		width:         80,
		height:        24,
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.frameInterval <= 0 {
		m.frameInterval = DefaultFrameInterval
	}
	if m.Player == nil {
		m.Player = player.New(m.logger)
	}
	m.now = m.clock()
	for _, t := range m.Controller.Tabs() {
		m.nextID = max(m.nextID, t.ID)
	}
	m.nextID++
	m.Controller.OnTransition(func(p stack.Plan) { m.Player.Play(p, m.now) })
	m.KeyHandler = NewKeyHandler(newRegistry())
	return m
}

func newRegistry() *KeybindRegistry {
	full := []stack.Mode{stack.ModeFullScreen, stack.ModeFocusingTab}
	inStack := []stack.Mode{stack.ModeStackView, stack.ModeEnteringStack}
	stackOnly := []stack.Mode{stack.ModeStackView}
	withTabs := []stack.Mode{stack.ModeFullScreen, stack.ModeStackView}

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)
	reg.BindWithDesc("n", actionCmd(actNewTab), "new tab")
	reg.BindWithDescForMode("s", actionCmd(actEnterStack), "stack", full)
	reg.BindWithDescForMode("enter", actionCmd(actFocus), "open", inStack)
	reg.BindWithDescForMode("x", actionCmd(actCloseTab), "close", withTabs)
	reg.BindWithDescForMode("h", actionCmd(actPrevTab), "prev", withTabs)
	reg.BindWithDescForMode("l", actionCmd(actNextTab), "next", withTabs)
	reg.BindWithDescForMode("left", actionCmd(actPrevTab), "", withTabs)
	reg.BindWithDescForMode("right", actionCmd(actNextTab), "", withTabs)
	reg.BindWithDescForMode("k", actionCmd(actScrollBack), "scroll up", stackOnly)
	reg.BindWithDescForMode("j", actionCmd(actScrollForward), "scroll down", stackOnly)
	reg.BindWithDescForMode("up", actionCmd(actScrollBack), "", stackOnly)
	reg.BindWithDescForMode("down", actionCmd(actScrollForward), "", stackOnly)
	reg.BindWithDescForMode("K", actionCmd(actFlingBack), "fling up", stackOnly)
	reg.BindWithDescForMode("J", actionCmd(actFlingForward), "fling down", stackOnly)
	reg.BindWithDescForMode("v", actionCmd(actViewMore), "view more", stackOnly)
	reg.BindWithDescForMode("t", actionCmd(actReachTop), "reach top", stackOnly)
	reg.BindWithDescForMode("<", actionCmd(actSwipeBack), "swipe", stackOnly)
	reg.BindWithDescForMode(">", actionCmd(actSwipeForward), "", stackOnly)
	reg.BindWithDesc("SPC o", actionCmd(actRotate), "rotate")
	reg.BindWithDesc("SPC p", actionCmd(actTogglePolicy), "policy")
	reg.BindWithDesc("SPC d", actionCmd(actToggleDirection), "direction")
	reg.BindWithDesc("SPC t", actionCmd(actToggleTrace), "transitions")
	reg.BindWithDesc("SPC q", tea.Quit, "quit")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	a.ticking = true
	return tea.Batch(a.Trace.Init(), a.tick())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Trace.SetSize(traceWidth, max(a.height-3, 3))
		return a, nil
	case tea.KeyMsg:
		a.now = a.clock()
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Controller.Mode()); consumed {
			return a, cmd
		}
		v, cmd := a.Trace.Update(msg)
		a.Trace = v.(*TraceView)
		return a, cmd
	case actionMsg:
		a.now = a.clock()
		a.apply(msg.act)
		return a, a.ensureTicking()
	case frameMsg:
		a.now = time.Time(msg)
		return a, a.frame()
	case TransitionsUpdateMsg:
		v, cmd := a.Trace.Update(msg)
		a.Trace = v.(*TraceView)
		return a, cmd
	}
	return a, nil
}

const traceWidth = 34

func (m *AppModel) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *AppModel) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.tick()
}

// frame advances one animation step. Ticking stops once nothing moves.
func (m *AppModel) frame() tea.Cmd {
	more := m.Player.Advance(m.now, m.Controller)
	if !m.Player.Active() && !m.Controller.Plan().Empty() {
		m.Controller.FinishTransition()
	}
	if m.Controller.Update(m.now) {
		more = true
	}
	cmds := []tea.Cmd{m.refreshTransitions()}
	if more {
		cmds = append(cmds, m.tick())
	} else {
		m.ticking = false
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) refreshTransitions() tea.Cmd {
	if m.recorder == nil || !m.Trace.IsVisible() {
		return nil
	}
	v := m.recorder.Version()
	if v == m.traceVersion {
		return nil
	}
	m.traceVersion = v
	snapshot := m.recorder.Recent()
	return func() tea.Msg { return TransitionsUpdateMsg{Transitions: snapshot} }
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	mode := a.Controller.Mode()
	header := a.header()
	footer := RenderKeyBar(a.KeyHandler, mode, a.width)
	if a.KeyHandler.LeaderWaiting {
		footer = RenderKeybindHelp(a.KeyHandler, mode)
	}

	rows := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	cols := max(a.width-a.Trace.Width(), 1)
	body := a.renderStack(cols, rows)
	if a.Trace.IsVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, a.Trace.View())
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *AppModel) header() string {
	c := m.Controller
	status := fmt.Sprintf("%s · %s · %s · %s", c.Mode(), c.PolicyKind(), c.Orientation(), c.LayoutDirection())
	if sub := c.SubMode(); sub != stack.SubNone {
		status += " · " + sub.String()
	}
	stats := fmt.Sprintf("  tabs %d  scroll %.0f  spacing %.0f", c.NonDyingTabCount(), c.ScrollOffset(), c.Spacing())
	return Styles.Title.Render("tabstack") + "  " + Styles.Status.Render(status) + Styles.Muted.Render(stats)
}

// renderStack draws the switcher into a cols x rows area.
func (m *AppModel) renderStack(cols, rows int) string {
	c := m.Controller
	if c.TabCount() == 0 {
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			Styles.Empty.Render("No tabs. Press n to open one."))
	}

	canvas := NewCanvas(cols, rows)
	selectedID := -1
	if i := c.SelectedIndex(); i >= 0 && i < c.TabCount() {
		selectedID = c.Tabs()[i].ID
	}

	if c.Mode() == stack.ModeFullScreen {
		if i, ok := c.FocusIndex(); ok {
			t := c.Tabs()[i]
			canvas.DrawCard(Rect{X1: cols, Y1: rows}, fmt.Sprintf("Tab %d", t.ID), styleSelected)
			return canvas.String()
		}
	}

	proj := NewProjection(c.Viewport(), cols, rows)
	for _, f := range c.Frame() {
		canvas.DrawCard(proj.Frame(f), fmt.Sprintf("Tab %d", f.ID), frameStyle(f, f.ID == selectedID))
	}
	return canvas.String()
}
