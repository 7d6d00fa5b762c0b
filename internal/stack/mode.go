package stack

// Mode is the switcher's outer state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeEnteringStack
	ModeStackView
	ModeFocusingTab
	ModeFullScreen
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeEnteringStack:
		return "EnteringStack"
	case ModeStackView:
		return "StackView"
	case ModeFocusingTab:
		return "FocusingTab"
	case ModeFullScreen:
		return "FullScreen"
	default:
		return "Unknown"
	}
}

// SubMode is a StackView sub-transition that does not change Mode.
type SubMode int

const (
	SubNone SubMode = iota
	SubViewingMore
	SubReachingTop
)

func (s SubMode) String() string {
	switch s {
	case SubViewingMore:
		return "ViewingMore"
	case SubReachingTop:
		return "ReachingTop"
	default:
		return "None"
	}
}

// canEnterStack lists the modes EnterStack may start from. FocusingTab is
// included so a new enter supersedes an in-flight focus.
func (m Mode) canEnterStack() bool {
	return m == ModeFullScreen || m == ModeFocusingTab
}

// canFocus lists the modes FocusTab may start from.
func (m Mode) canFocus() bool {
	return m == ModeStackView || m == ModeEnteringStack
}
