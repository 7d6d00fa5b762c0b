package telemetry

import (
	"context"
	"strings"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanPrefix marks the spans the stack controller starts per transition.
const SpanPrefix = "tabstack."

// Transition is one finished stack transition span.
type Transition struct {
	Kind       string            `json:"kind"`
	Start      time.Time         `json:"start"`
	Duration   time.Duration     `json:"duration"`
	Superseded bool              `json:"superseded"`
	Attributes map[string]string `json:"attributes"`
}

// Recorder keeps the most recent transition spans in memory. It is an
// sdktrace.SpanProcessor and ignores spans outside SpanPrefix.
type Recorder struct {
	mu      sync.RWMutex
	recent  []Transition // oldest first
	max     int
	version uint64
}

var _ sdktrace.SpanProcessor = (*Recorder)(nil)

// NewRecorder keeps up to limit transitions (default 10).
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 10
	}
	return &Recorder{recent: make([]Transition, 0, limit), max: limit}
}

func (r *Recorder) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd records s when it is a transition span, evicting the oldest one.
func (r *Recorder) OnEnd(s sdktrace.ReadOnlySpan) {
	name := s.Name()
	if !strings.HasPrefix(name, SpanPrefix) {
		return
	}
	tr := Transition{
		Kind:       strings.TrimPrefix(name, SpanPrefix),
		Start:      s.StartTime(),
		Duration:   s.EndTime().Sub(s.StartTime()),
		Attributes: make(map[string]string, len(s.Attributes())),
	}
	for _, kv := range s.Attributes() {
		key := strings.TrimPrefix(string(kv.Key), SpanPrefix)
		if key == "superseded" {
			tr.Superseded = kv.Value.AsBool()
			continue
		}
		tr.Attributes[key] = kv.Value.Emit()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recent = append(r.recent, tr)
	if len(r.recent) > r.max {
		r.recent = r.recent[len(r.recent)-r.max:]
	}
	r.version++
}

func (r *Recorder) Shutdown(context.Context) error   { return nil }
func (r *Recorder) ForceFlush(context.Context) error { return nil }

// Recent returns the recorded transitions, newest first.
func (r *Recorder) Recent() []Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Transition, 0, len(r.recent))
	for i := len(r.recent) - 1; i >= 0; i-- {
		out = append(out, r.recent[i])
	}
	return out
}

// Version increases every time a transition is recorded.
func (r *Recorder) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}
