package stack

import (
	"fmt"
	"time"
)

// Kind identifies the transition a Plan animates.
type Kind int

const (
	KindEnterStack Kind = iota
	KindTabFocused
	KindViewMore
	KindReachTop
	KindDiscard
	KindNewTabOpened
	KindUndiscard
)

func (k Kind) String() string {
	switch k {
	case KindEnterStack:
		return "enter_stack"
	case KindTabFocused:
		return "tab_focused"
	case KindViewMore:
		return "view_more"
	case KindReachTop:
		return "reach_top"
	case KindDiscard:
		return "discard"
	case KindNewTabOpened:
		return "new_tab_opened"
	case KindUndiscard:
		return "undiscard"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TargetKind distinguishes per-tab entries from scene-level ones.
type TargetKind int

const (
	TargetTab TargetKind = iota
	TargetScene
)

// Target names what an Entry animates. TabID is only meaningful for
// TargetTab.
type Target struct {
	Kind  TargetKind
	TabID int
}

// TabTarget returns the target for tab id.
func TabTarget(id int) Target { return Target{Kind: TargetTab, TabID: id} }

// SceneTarget is the controller itself.
var SceneTarget = Target{Kind: TargetScene}

func (t Target) String() string {
	if t.Kind == TargetScene {
		return "scene"
	}
	return fmt.Sprintf("tab:%d", t.TabID)
}

// Property is an animatable value. Tab properties apply to TargetTab, scene
// properties to TargetScene.
type Property int

const (
	PropScrollOffset Property = iota
	PropScale
	PropAlpha
	PropDiscardAmount
	PropYInStackOffset
	PropYInStackInfluence
	PropYOutOfStack
	PropTiltX
	PropTiltY
	PropMaxContentHeight
	PropToolbarAlpha
	PropToolbarYOffset
	PropSideBorderScale

	SceneScrollOffset
	SceneChromeAlpha
	SceneChromeOffset
)

var propertyNames = [...]string{
	PropScrollOffset:      "scroll_offset",
	PropScale:             "scale",
	PropAlpha:             "alpha",
	PropDiscardAmount:     "discard_amount",
	PropYInStackOffset:    "y_in_stack_offset",
	PropYInStackInfluence: "y_in_stack_influence",
	PropYOutOfStack:       "y_out_of_stack",
	PropTiltX:             "tilt_x",
	PropTiltY:             "tilt_y",
	PropMaxContentHeight:  "max_content_height",
	PropToolbarAlpha:      "toolbar_alpha",
	PropToolbarYOffset:    "toolbar_y_offset",
	PropSideBorderScale:   "side_border_scale",
	SceneScrollOffset:     "scene_scroll_offset",
	SceneChromeAlpha:      "scene_chrome_alpha",
	SceneChromeOffset:     "scene_chrome_offset",
}

func (p Property) String() string {
	if p >= 0 && int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("property(%d)", int(p))
}

// IsScene reports whether p belongs to the scene rather than a tab.
func (p Property) IsScene() bool { return p >= SceneScrollOffset }

// Entry animates one property of one target from Start to End.
type Entry struct {
	Target   Target
	Property Property
	Start    float64
	End      float64
	Duration time.Duration
	Delay    time.Duration
}

// Plan is the ordered list of entries for one transition. Building a plan has
// no side effects on playback; interpolation is the caller's job.
type Plan struct {
	Kind    Kind
	Entries []Entry
}

// Empty reports whether the plan animates nothing.
func (p Plan) Empty() bool { return len(p.Entries) == 0 }

// Len returns the number of entries.
func (p Plan) Len() int { return len(p.Entries) }

// Duration is the time until the last entry ends.
func (p Plan) Duration() time.Duration {
	var d time.Duration
	for _, e := range p.Entries {
		d = max(d, e.Delay+e.Duration)
	}
	return d
}

// TabIDs returns the distinct tab ids touched by the plan, in first-touch
// order.
func (p Plan) TabIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, e := range p.Entries {
		if e.Target.Kind != TargetTab || seen[e.Target.TabID] {
			continue
		}
		seen[e.Target.TabID] = true
		ids = append(ids, e.Target.TabID)
	}
	return ids
}

// Find returns the first entry for target and property.
func (p Plan) Find(target Target, prop Property) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Target == target && e.Property == prop {
			return e, true
		}
	}
	return Entry{}, false
}

func (p *Plan) addTab(t *TabProxy, prop Property, start, end float64, dur, delay time.Duration) {
	p.Entries = append(p.Entries, Entry{
		Target:   TabTarget(t.ID),
		Property: prop,
		Start:    start,
		End:      end,
		Duration: dur,
		Delay:    delay,
	})
}

func (p *Plan) addScene(prop Property, start, end float64, dur, delay time.Duration) {
	p.Entries = append(p.Entries, Entry{
		Target:   SceneTarget,
		Property: prop,
		Start:    start,
		End:      end,
		Duration: dur,
		Delay:    delay,
	})
}
