// Package trace provides the timeline and decision-record types of a scheduling run.
// It has no dependencies on sim/ and stores pure data types.
package trace

// IdleLabel is the label of segments during which no job holds the CPU.
const IdleLabel = "Idle"

// Segment is a half-open interval [Start, End) of the simulated timeline,
// labeled with the job that held the CPU or marked Idle.
type Segment struct {
	Start int64  `json:"start" yaml:"start"`
	End   int64  `json:"end" yaml:"end"`
	Label string `json:"label" yaml:"label"`
	Idle  bool   `json:"idle,omitempty" yaml:"idle,omitempty"`
}

// Len returns the number of ticks covered by the segment.
func (s Segment) Len() int64 {
	return s.End - s.Start
}

// DecisionKind names a scheduler decision captured in a decision trace.
type DecisionKind string

const (
	DecisionDispatch DecisionKind = "dispatch" // a job was given the CPU
	DecisionPreempt  DecisionKind = "preempt"  // the running job was displaced by a shorter one
	DecisionRotate   DecisionKind = "rotate"   // round robin quantum expired
	DecisionComplete DecisionKind = "complete" // the running job finished
	DecisionIdle     DecisionKind = "idle"     // nothing ready; CPU idles until the next arrival
)

// DecisionRecord captures a single scheduler decision.
type DecisionRecord struct {
	Clock     int64        `json:"clock" yaml:"clock"`
	Kind      DecisionKind `json:"kind" yaml:"kind"`
	JobID     string       `json:"job_id,omitempty" yaml:"job_id,omitempty"`
	Remaining int64        `json:"remaining" yaml:"remaining"` // remaining ticks of JobID at Clock
	Reason    string       `json:"reason,omitempty" yaml:"reason,omitempty"`
}
