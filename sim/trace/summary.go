package trace

// TimelineSummary aggregates statistics from a sequence of segments.
type TimelineSummary struct {
	BusyTicks       int64          // ticks during which some job held the CPU
	IdleTicks       int64          // ticks during which the CPU was idle
	ContextSwitches int            // changes of running job between consecutive busy segments
	Slices          map[string]int // job ID → number of segments
}

// Summarize computes aggregate statistics from segments.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(segments []Segment) *TimelineSummary {
	summary := &TimelineSummary{
		Slices: make(map[string]int),
	}
	prevLabel := ""
	for _, s := range segments {
		if s.Idle {
			summary.IdleTicks += s.Len()
			continue
		}
		summary.BusyTicks += s.Len()
		summary.Slices[s.Label]++
		if prevLabel != "" && prevLabel != s.Label {
			summary.ContextSwitches++
		}
		prevLabel = s.Label
	}
	return summary
}

// DecisionSummary counts decisions by kind.
type DecisionSummary struct {
	Dispatches  int
	Preemptions int
	Rotations   int
	Completions int
	IdleWaits   int
}

// SummarizeDecisions counts the decisions in a log.
// Safe for a nil log.
func SummarizeDecisions(dl *DecisionLog) *DecisionSummary {
	summary := &DecisionSummary{}
	if dl == nil {
		return summary
	}
	for _, d := range dl.Decisions {
		switch d.Kind {
		case DecisionDispatch:
			summary.Dispatches++
		case DecisionPreempt:
			summary.Preemptions++
		case DecisionRotate:
			summary.Rotations++
		case DecisionComplete:
			summary.Completions++
		case DecisionIdle:
			summary.IdleWaits++
		}
	}
	return summary
}
