// Package player plays stack plans: it interpolates every entry per frame and
// writes the values back to a Sink, usually the stack controller.
package player

import (
	"log/slog"
	"time"

	"tabstack/internal/stack"
)

// Sink receives interpolated values.
type Sink interface {
	Apply(target stack.Target, prop stack.Property, v float64)
}

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(float64) float64

// Decelerate starts fast and eases into the end value.
func Decelerate(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

type key struct {
	target stack.Target
	prop   stack.Property
}

type track struct {
	entry stack.Entry
	start time.Time
}

// Player holds the running tracks, at most one per (target, property).
type Player struct {
	tracks []track
	index  map[key]int
	easing Easing
	kind   stack.Kind
	logger *slog.Logger
}

// New returns an idle player using Decelerate. A nil logger discards.
func New(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{index: make(map[key]int), easing: Decelerate, logger: logger}
}

// SetEasing replaces the easing curve. Nil restores Decelerate.
func (p *Player) SetEasing(e Easing) {
	if e == nil {
		e = Decelerate
	}
	p.easing = e
}

// Play starts every entry of plan at at. An entry replaces a running track
// for the same target and property; tracks the plan does not touch keep
// playing.
func (p *Player) Play(plan stack.Plan, at time.Time) {
	replaced := 0
	for _, e := range plan.Entries {
		k := key{e.Target, e.Property}
		tr := track{entry: e, start: at}
		if i, ok := p.index[k]; ok {
			p.tracks[i] = tr
			replaced++
			continue
		}
		p.index[k] = len(p.tracks)
		p.tracks = append(p.tracks, tr)
	}
	p.kind = plan.Kind
	p.logger.Debug("plan playing", "kind", plan.Kind, "entries", plan.Len(), "replaced", replaced, "tracks", len(p.tracks))
}

// Active reports whether any track is still running.
func (p *Player) Active() bool { return len(p.tracks) > 0 }

// Kind is the kind of the most recently played plan.
func (p *Player) Kind() stack.Kind { return p.kind }

// Advance writes every track's value at at to sink and drops tracks that
// reached their end. It reports whether any track is still running.
func (p *Player) Advance(at time.Time, sink Sink) bool {
	if len(p.tracks) == 0 {
		return false
	}
	kept := p.tracks[:0]
	for _, tr := range p.tracks {
		v, done := p.valueAt(tr, at)
		sink.Apply(tr.entry.Target, tr.entry.Property, v)
		if !done {
			kept = append(kept, tr)
		}
	}
	p.tracks = kept
	p.reindex()
	return len(p.tracks) > 0
}

// Finish jumps every track to its end value.
func (p *Player) Finish(sink Sink) {
	for _, tr := range p.tracks {
		sink.Apply(tr.entry.Target, tr.entry.Property, tr.entry.End)
	}
	p.Cancel()
}

// Cancel drops every track where it is.
func (p *Player) Cancel() {
	p.tracks = p.tracks[:0]
	clear(p.index)
}

func (p *Player) valueAt(tr track, at time.Time) (float64, bool) {
	e := tr.entry
	elapsed := at.Sub(tr.start) - e.Delay
	if elapsed < 0 {
		return e.Start, false
	}
	if e.Duration <= 0 || elapsed >= e.Duration {
		return e.End, true
	}
	f := p.easing(float64(elapsed) / float64(e.Duration))
	return e.Start + (e.End-e.Start)*f, false
}

func (p *Player) reindex() {
	clear(p.index)
	for i, tr := range p.tracks {
		p.index[key{tr.entry.Target, tr.entry.Property}] = i
	}
}
