package trace

import "fmt"

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables decision tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every dispatch, preemption, rotation and completion.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Timeline is the ordered, gap-free sequence of segments of a run.
// Adjacent segments never share a label: Append merges them.
type Timeline struct {
	Segments []Segment
}

// NewTimeline creates an empty Timeline.
func NewTimeline() *Timeline {
	return &Timeline{Segments: make([]Segment, 0)}
}

// Append adds a segment to the end of the timeline.
// Empty segments are dropped. A segment that continues the previous one
// (same label, previous End == Start) extends it instead of being appended.
// Panics if the segment does not start where the timeline ends.
func (tl *Timeline) Append(seg Segment) {
	if seg.End <= seg.Start {
		return
	}
	n := len(tl.Segments)
	if n == 0 {
		tl.Segments = append(tl.Segments, seg)
		return
	}
	last := &tl.Segments[n-1]
	if last.End != seg.Start {
		panic(fmt.Sprintf("Append: segment [%d,%d) does not continue timeline ending at %d", seg.Start, seg.End, last.End))
	}
	if last.Label == seg.Label && last.Idle == seg.Idle {
		last.End = seg.End
		return
	}
	tl.Segments = append(tl.Segments, seg)
}

// DecisionLog collects decision records during a run.
type DecisionLog struct {
	Level     TraceLevel
	Decisions []DecisionRecord
}

// NewDecisionLog creates a DecisionLog ready for recording.
func NewDecisionLog(level TraceLevel) *DecisionLog {
	return &DecisionLog{
		Level:     level,
		Decisions: make([]DecisionRecord, 0),
	}
}

// Record appends a decision record. No-op on a nil log or at TraceLevelNone.
func (dl *DecisionLog) Record(record DecisionRecord) {
	if dl == nil || dl.Level != TraceLevelDecisions {
		return
	}
	dl.Decisions = append(dl.Decisions, record)
}
