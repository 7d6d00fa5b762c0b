package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// action is a user command bound to a key.
type action int

const (
	actEnterStack action = iota
	actFocus
	actPrevTab
	actNextTab
	actViewMore
	actReachTop
	actScrollBack
	actScrollForward
	actFlingBack
	actFlingForward
	actNewTab
	actCloseTab
	actRotate
	actTogglePolicy
	actToggleDirection
	actToggleTrace
	actSwipeBack
	actSwipeForward
)

// actionMsg is sent when a bound key fires.
type actionMsg struct {
	act action
}

func actionCmd(a action) tea.Cmd {
	return func() tea.Msg { return actionMsg{act: a} }
}
