// Derives per-job and aggregate scheduling metrics from a finished run:
// completion, turnaround, waiting and response times, utilization and throughput.

package sim

import (
	"sort"

	"github.com/procsched/procsched/sim/trace"
)

// JobMetrics holds the per-job outcome of a run. All values are in ticks.
type JobMetrics struct {
	ID         string `json:"id" yaml:"id"`
	Arrival    int64  `json:"arrival" yaml:"arrival"`
	Burst      int64  `json:"burst" yaml:"burst"`
	Priority   int64  `json:"priority" yaml:"priority"`
	FirstStart int64  `json:"first_start" yaml:"first_start"`
	Completion int64  `json:"completion" yaml:"completion"`
	Turnaround int64  `json:"turnaround" yaml:"turnaround"` // completion - arrival
	Waiting    int64  `json:"waiting" yaml:"waiting"`       // turnaround - burst
	Response   int64  `json:"response" yaml:"response"`     // first start - arrival
	Slices     int    `json:"slices" yaml:"slices"`         // trace segments the job ran in
}

// AggregateMetrics summarizes a run. Averages and rates are exact ratios.
type AggregateMetrics struct {
	JobCount          int   `json:"job_count" yaml:"job_count"`
	AverageTurnaround Ratio `json:"average_turnaround" yaml:"average_turnaround"`
	AverageWaiting    Ratio `json:"average_waiting" yaml:"average_waiting"`
	AverageResponse   Ratio `json:"average_response" yaml:"average_response"`
	Makespan          int64 `json:"makespan" yaml:"makespan"` // max completion
	BusyTicks         int64 `json:"busy_ticks" yaml:"busy_ticks"`
	IdleTicks         int64 `json:"idle_ticks" yaml:"idle_ticks"`
	CPUUtilization    Ratio `json:"cpu_utilization" yaml:"cpu_utilization"` // (makespan - idle) / makespan
	Throughput        Ratio `json:"throughput" yaml:"throughput"`           // jobs / makespan
	ContextSwitches   int   `json:"context_switches" yaml:"context_switches"`

	Turnaround Distribution `json:"turnaround" yaml:"turnaround"`
	Waiting    Distribution `json:"waiting" yaml:"waiting"`
	Response   Distribution `json:"response" yaml:"response"`
}

// computeMetrics derives the metrics table, sorted by job ID, and the aggregates.
func computeMetrics(states []*jobState, segments []trace.Segment) ([]JobMetrics, AggregateMetrics) {
	jobs := make([]JobMetrics, 0, len(states))
	turnarounds := make([]int64, 0, len(states))
	waits := make([]int64, 0, len(states))
	responses := make([]int64, 0, len(states))
	summary := trace.Summarize(segments)
	var sumTurnaround, sumWaiting, sumResponse, makespan int64
	for _, js := range states {
		m := JobMetrics{
			ID:         js.job.ID,
			Arrival:    js.job.Arrival,
			Burst:      js.job.Burst,
			Priority:   js.job.Priority,
			FirstStart: js.firstStart,
			Completion: js.completion,
			Slices:     summary.Slices[js.job.ID],
		}
		m.Turnaround = m.Completion - m.Arrival
		m.Waiting = m.Turnaround - m.Burst
		m.Response = m.FirstStart - m.Arrival

		sumTurnaround += m.Turnaround
		sumWaiting += m.Waiting
		sumResponse += m.Response
		makespan = max(makespan, m.Completion)
		turnarounds = append(turnarounds, m.Turnaround)
		waits = append(waits, m.Waiting)
		responses = append(responses, m.Response)
		jobs = append(jobs, m)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })

	n := int64(len(states))
	agg := AggregateMetrics{
		JobCount:          len(states),
		AverageTurnaround: NewRatio(sumTurnaround, n),
		AverageWaiting:    NewRatio(sumWaiting, n),
		AverageResponse:   NewRatio(sumResponse, n),
		Makespan:          makespan,
		BusyTicks:         summary.BusyTicks,
		IdleTicks:         summary.IdleTicks,
		CPUUtilization:    NewRatio(makespan-summary.IdleTicks, makespan),
		Throughput:        NewRatio(n, makespan),
		ContextSwitches:   summary.ContextSwitches,
		Turnaround:        NewDistribution(turnarounds),
		Waiting:           NewDistribution(waits),
		Response:          NewDistribution(responses),
	}
	return jobs, agg
}
