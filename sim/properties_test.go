package sim_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procsched/procsched/sim"
	"github.com/procsched/procsched/sim/trace"
	"github.com/procsched/procsched/sim/workload"
)

// randomJobSets returns generated job sets covering dense, sparse and
// same-tick arrival patterns.
func randomJobSets(t *testing.T) map[string][]sim.Job {
	t.Helper()
	specs := map[string]workload.GeneratorSpec{
		"poisson": {Count: 25, Arrival: workload.ArrivalSpec{Process: "poisson", MeanGap: 3}, Burst: workload.BurstSpec{Min: 1, Max: 9}},
		"sparse":  {Count: 12, Arrival: workload.ArrivalSpec{Process: "uniform", MaxGap: 15}, Burst: workload.BurstSpec{Min: 1, Max: 6}},
		"batch":   {Count: 10, Arrival: workload.ArrivalSpec{Process: "batch"}, Burst: workload.BurstSpec{Type: "exponential", Mean: 4, Min: 1, Max: 20}},
	}
	sets := make(map[string][]sim.Job)
	for name, spec := range specs {
		for seed := int64(1); seed <= 5; seed++ {
			s := spec
			s.Seed = seed
			jobs, err := workload.GenerateJobs(&s)
			require.NoError(t, err)
			sets[fmt.Sprintf("%s/seed=%d", name, seed)] = jobs
		}
	}
	return sets
}

func allPolicies() []sim.PolicyConfig {
	return []sim.PolicyConfig{
		{Kind: sim.FCFS},
		{Kind: sim.SJN},
		{Kind: sim.SRT},
		{Kind: sim.RoundRobin, Quantum: 1},
		{Kind: sim.RoundRobin, Quantum: 3},
	}
}

// forEachRun runs every policy over every generated job set.
func forEachRun(t *testing.T, check func(t *testing.T, jobs []sim.Job, policy sim.PolicyConfig, res *sim.Result)) {
	for name, jobs := range randomJobSets(t) {
		for _, p := range allPolicies() {
			t.Run(name+"/"+p.String(), func(t *testing.T) {
				res, err := sim.Simulate(jobs, p, sim.Limits{})
				require.NoError(t, err)
				check(t, jobs, p, res)
			})
		}
	}
}

func TestProperty_TraceIsContiguousAndMerged(t *testing.T) {
	forEachRun(t, func(t *testing.T, _ []sim.Job, _ sim.PolicyConfig, res *sim.Result) {
		require.NotEmpty(t, res.Trace)
		assert.Equal(t, int64(0), res.Trace[0].Start)
		assert.Equal(t, res.Aggregate.Makespan, res.Trace[len(res.Trace)-1].End)
		for i, seg := range res.Trace {
			assert.Greater(t, seg.End, seg.Start, "segment %d is empty", i)
			if i == 0 {
				continue
			}
			prev := res.Trace[i-1]
			assert.Equal(t, prev.End, seg.Start, "gap before segment %d", i)
			assert.False(t, prev.Label == seg.Label && prev.Idle == seg.Idle, "unmerged segments at %d", i)
		}
	})
}

func TestProperty_EachJobRunsExactlyItsBurstAfterArrival(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, _ sim.PolicyConfig, res *sim.Result) {
		ran := make(map[string]int64)
		for _, seg := range res.Trace {
			if seg.Idle {
				continue
			}
			j, ok := res.Job(seg.Label)
			require.True(t, ok, "segment for unknown job %s", seg.Label)
			assert.GreaterOrEqual(t, seg.Start, j.Arrival, "%s ran before it arrived", seg.Label)
			assert.LessOrEqual(t, seg.End, j.Completion, "%s ran after it completed", seg.Label)
			ran[seg.Label] += seg.Len()
		}
		for _, j := range jobs {
			assert.Equal(t, j.Burst, ran[j.ID], "job %s", j.ID)
		}
	})
}

func TestProperty_MetricIdentities(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, _ sim.PolicyConfig, res *sim.Result) {
		require.Len(t, res.Jobs, len(jobs))
		for _, m := range res.Jobs {
			assert.Equal(t, m.Completion-m.Arrival, m.Turnaround)
			assert.Equal(t, m.Turnaround-m.Burst, m.Waiting)
			assert.Equal(t, m.FirstStart-m.Arrival, m.Response)
			assert.GreaterOrEqual(t, m.Waiting, int64(0))
			assert.GreaterOrEqual(t, m.Response, int64(0))
			assert.LessOrEqual(t, m.Response, m.Waiting)
		}
		agg := res.Aggregate
		assert.Equal(t, agg.Makespan, agg.BusyTicks+agg.IdleTicks)
	})
}

func TestProperty_IdleOnlyWhenNothingReady(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, _ sim.PolicyConfig, res *sim.Result) {
		for _, seg := range res.Trace {
			if !seg.Idle {
				continue
			}
			for _, j := range jobs {
				m, _ := res.Job(j.ID)
				inSystem := j.Arrival <= seg.Start && m.Completion > seg.Start
				assert.False(t, inSystem, "CPU idle at %d while %s was ready", seg.Start, j.ID)
				assert.False(t, j.Arrival > seg.Start && j.Arrival < seg.End,
					"%s arrived at %d inside idle segment [%d,%d)", j.ID, j.Arrival, seg.Start, seg.End)
			}
		}
	})
}

func TestProperty_NonPreemptivePoliciesRunEachJobOnce(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		if p.Kind != sim.FCFS && p.Kind != sim.SJN {
			return
		}
		slices := trace.Summarize(res.Trace).Slices
		for _, j := range jobs {
			assert.Equal(t, 1, slices[j.ID], "job %s", j.ID)
		}
		for _, m := range res.Jobs {
			assert.Equal(t, 1, m.Slices, "job %s", m.ID)
			assert.Equal(t, m.Response, m.Waiting, "job %s", m.ID)
		}
	})
}

func TestProperty_FCFS_CompletesInArrivalOrder(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		if p.Kind != sim.FCFS {
			return
		}
		want := append([]sim.Job(nil), jobs...)
		sort.Slice(want, func(i, j int) bool {
			if want[i].Arrival != want[j].Arrival {
				return want[i].Arrival < want[j].Arrival
			}
			return want[i].ID < want[j].ID
		})
		ids := make([]string, len(want))
		for i, j := range want {
			ids[i] = j.ID
		}
		assert.Equal(t, ids, res.CompletionOrder())
	})
}

func TestProperty_SJN_DispatchesShortestReadyJob(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		if p.Kind != sim.SJN {
			return
		}
		for _, seg := range res.Trace {
			if seg.Idle {
				continue
			}
			runner, _ := res.Job(seg.Label)
			for _, j := range jobs {
				m, _ := res.Job(j.ID)
				ready := j.Arrival <= seg.Start && m.FirstStart > seg.Start
				assert.False(t, ready && j.Burst < runner.Burst,
					"tick %d: dispatched %s (burst %d) while %s (burst %d) was ready",
					seg.Start, runner.ID, runner.Burst, j.ID, j.Burst)
			}
		}
	})
}

func TestProperty_SRT_RunningJobHasLeastRemaining(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		if p.Kind != sim.SRT {
			return
		}
		remaining := make(map[string]int64, len(jobs))
		for _, j := range jobs {
			remaining[j.ID] = j.Burst
		}
		for _, seg := range res.Trace {
			for tick := seg.Start; tick < seg.End; tick++ {
				if !seg.Idle {
					for _, j := range jobs {
						if j.ID == seg.Label || j.Arrival > tick || remaining[j.ID] == 0 {
							continue
						}
						require.LessOrEqual(t, remaining[seg.Label], remaining[j.ID],
							"tick %d: %s runs with %d remaining while %s has %d", tick, seg.Label, remaining[seg.Label], j.ID, remaining[j.ID])
					}
					remaining[seg.Label]--
				}
			}
		}
	})
}

func TestProperty_RoundRobin_SlicesBoundedByQuantum(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		if p.Kind != sim.RoundRobin {
			return
		}
		for _, seg := range res.Trace {
			if seg.Idle || seg.Len() <= p.Quantum {
				continue
			}
			// a longer slice means no other job was queued when its quantum
			// expired; a job arriving at that very tick queues behind it
			expiry := seg.Start + p.Quantum
			for _, j := range jobs {
				if j.ID == seg.Label {
					continue
				}
				m, _ := res.Job(j.ID)
				assert.False(t, j.Arrival < expiry && m.Completion > expiry,
					"%s kept the CPU past %d while %s was waiting", seg.Label, expiry, j.ID)
			}
		}
	})
}

func TestProperty_Deterministic(t *testing.T) {
	forEachRun(t, func(t *testing.T, jobs []sim.Job, p sim.PolicyConfig, res *sim.Result) {
		reversed := make([]sim.Job, len(jobs))
		for i, j := range jobs {
			reversed[len(jobs)-1-i] = j
		}
		again, err := sim.Simulate(reversed, p, sim.Limits{})
		require.NoError(t, err)
		assert.Equal(t, res.Trace, again.Trace)
		assert.Equal(t, res.Jobs, again.Jobs)
		assert.Equal(t, res.Aggregate, again.Aggregate)
		assert.Equal(t, res.Steps, again.Steps)
	})
}
