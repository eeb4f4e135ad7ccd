package sim

import (
	"sort"

	"github.com/procsched/procsched/sim/trace"
)

// Result is the complete outcome of a run. It is built once at the end of
// Run and never modified by the simulator afterwards.
type Result struct {
	Policy    PolicyConfig           `json:"policy" yaml:"policy"`
	Trace     []trace.Segment        `json:"trace" yaml:"trace"`
	Jobs      []JobMetrics           `json:"jobs" yaml:"jobs"` // sorted by job ID
	Aggregate AggregateMetrics       `json:"aggregate" yaml:"aggregate"`
	Steps     int64                  `json:"steps" yaml:"steps"` // scheduling decisions taken
	Decisions []trace.DecisionRecord `json:"decisions,omitempty" yaml:"decisions,omitempty"`

	index map[string]int
}

// Job returns the metrics of the job with the given ID.
func (r *Result) Job(id string) (JobMetrics, bool) {
	if r == nil {
		return JobMetrics{}, false
	}
	if r.index == nil {
		// decoded results carry no index
		for _, m := range r.Jobs {
			if m.ID == id {
				return m, true
			}
		}
		return JobMetrics{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return JobMetrics{}, false
	}
	return r.Jobs[i], true
}

// CompletionOrder returns job IDs ordered by completion tick, ties by ID.
func (r *Result) CompletionOrder() []string {
	jobs := append([]JobMetrics(nil), r.Jobs...)
	// Jobs is sorted by ID, so a stable sort keeps ID order on equal completion.
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Completion < jobs[j].Completion })
	ids := make([]string, len(jobs))
	for i, m := range jobs {
		ids[i] = m.ID
	}
	return ids
}
