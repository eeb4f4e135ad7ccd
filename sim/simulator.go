// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/procsched/procsched/sim/trace"
)

// Limits bounds a run. Zero values mean unlimited.
type Limits struct {
	MaxSteps int64 `json:"max_steps,omitempty" yaml:"max_steps,omitempty"` // scheduling decisions (invocations of pick)
	MaxTicks int64 `json:"max_ticks,omitempty" yaml:"max_ticks,omitempty"` // simulated time may not advance beyond this tick
}

// Validate rejects negative limits.
func (l Limits) Validate() error {
	if l.MaxSteps < 0 {
		return invalidConfigf("max steps must be >= 0, got %d", l.MaxSteps)
	}
	if l.MaxTicks < 0 {
		return invalidConfigf("max ticks must be >= 0, got %d", l.MaxTicks)
	}
	return nil
}

// Simulator is the single-CPU scheduling engine. It holds simulation time,
// per-job run state, the ready set and the event loop.
//
// Thread-safety: NOT thread-safe. A Simulator owns all of its state for the
// duration of Run; callers wanting a responsive UI run it on their own goroutine.
type Simulator struct {
	Clock int64

	jobs       []Job
	policy     PolicyConfig
	limits     Limits
	traceLevel trace.TraceLevel

	states   []*jobState
	ready    *readySet
	events   EventQueue
	running  *jobState
	timeline *trace.Timeline
	log      *trace.DecisionLog

	// generation increments on every dispatch; completion and expiry events
	// from an earlier dispatch are stale.
	generation int64
	seq        int64
	// reevaluate is set by arrivals under a preemptive policy.
	reevaluate bool
	steps      int64
}

// NewSimulator validates the inputs and returns a Simulator ready to Run.
// Validation order: policy, limits, job-count bound, then jobs in input order.
func NewSimulator(jobs []Job, policy PolicyConfig, limits Limits) (*Simulator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if err := validateJobs(jobs); err != nil {
		return nil, err
	}
	return &Simulator{
		jobs:       append([]Job(nil), jobs...),
		policy:     policy,
		limits:     limits,
		traceLevel: trace.TraceLevelNone,
	}, nil
}

// Simulate runs the scheduler over jobs under policy and returns the complete result.
// All errors are fatal: no partial result is returned.
func Simulate(jobs []Job, policy PolicyConfig, limits Limits) (*Result, error) {
	s, err := NewSimulator(jobs, policy, limits)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// SetTraceLevel enables decision recording for subsequent runs.
// Unrecognized levels are treated as none.
func (sim *Simulator) SetTraceLevel(level trace.TraceLevel) {
	if !trace.IsValidTraceLevel(string(level)) || level == "" {
		level = trace.TraceLevelNone
	}
	sim.traceLevel = level
}

// reset rebuilds the run state so that every Run starts from tick 0.
func (sim *Simulator) reset() {
	sim.Clock = 0
	sim.states = make([]*jobState, len(sim.jobs))
	sim.ready = newReadySet(sim.policy.Kind)
	sim.events = make(EventQueue, 0, len(sim.jobs)+1)
	sim.running = nil
	sim.timeline = trace.NewTimeline()
	sim.log = trace.NewDecisionLog(sim.traceLevel)
	sim.generation = 0
	sim.seq = 0
	sim.reevaluate = false
	sim.steps = 0

	for i, j := range sim.jobs {
		sim.states[i] = newJobState(j)
	}
	// Arrivals are scheduled in (arrival, ID) order so that jobs arriving at
	// the same tick are admitted, and queued for round robin, in ID order.
	order := append([]*jobState(nil), sim.states...)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].job.Arrival != order[j].job.Arrival {
			return order[i].job.Arrival < order[j].job.Arrival
		}
		return order[i].job.ID < order[j].job.ID
	})
	for _, js := range order {
		sim.Schedule(&ArrivalEvent{time: js.job.Arrival, state: js})
	}
}

// Run executes the event loop until every job has completed.
// Run may be called again; each call starts over from tick 0.
func (sim *Simulator) Run() (*Result, error) {
	sim.reset()
	logrus.Debugf("[tick %07d] Starting %s with %d jobs", sim.Clock, sim.policy, len(sim.jobs))

	for {
		// drain every event at this tick before the next scheduling decision
		for ev := sim.nextEvent(); ev != nil && ev.Timestamp() == sim.Clock; ev = sim.nextEvent() {
			heap.Pop(&sim.events)
			ev.Execute(sim)
		}
		if sim.reevaluate {
			sim.reevaluate = false
			if sim.running != nil {
				if err := sim.preemptIfBetter(); err != nil {
					return nil, err
				}
			}
		}
		if sim.running == nil {
			if err := sim.dispatch(); err != nil {
				return nil, err
			}
		}
		next := sim.nextEvent()
		if next == nil {
			break
		}
		if err := sim.advanceTo(next.Timestamp()); err != nil {
			return nil, err
		}
	}

	logrus.Debugf("[tick %07d] Simulation ended after %d decisions", sim.Clock, sim.steps)
	return sim.buildResult(), nil
}

// nextEvent discards stale events at the top of the queue and returns the next live one.
func (sim *Simulator) nextEvent() Event {
	for {
		ev := sim.events.peek()
		if ev == nil || !sim.isStale(ev) {
			return ev
		}
		heap.Pop(&sim.events)
	}
}

func (sim *Simulator) isStale(ev Event) bool {
	switch e := ev.(type) {
	case *CompletionEvent:
		return e.generation != sim.generation
	case *QuantumExpiryEvent:
		return e.generation != sim.generation
	default:
		return false
	}
}

// countStep records one scheduling decision and enforces MaxSteps.
func (sim *Simulator) countStep() error {
	sim.steps++
	if sim.limits.MaxSteps > 0 && sim.steps > sim.limits.MaxSteps {
		return fmt.Errorf("%w: more than %d scheduling decisions at tick %d", ErrStepLimitExceeded, sim.limits.MaxSteps, sim.Clock)
	}
	return nil
}

// dispatch picks the next runner for a free CPU. All events at the current
// tick have been drained, so when nothing is ready the CPU stays free and the
// next advance emits an Idle segment up to the next arrival.
// When nothing is ready and no events remain, the run is over.
func (sim *Simulator) dispatch() error {
	js := sim.ready.pick()
	if js == nil {
		next := sim.nextEvent()
		if next == nil {
			return nil
		}
		if err := sim.countStep(); err != nil {
			return err
		}
		sim.log.Record(trace.DecisionRecord{Clock: sim.Clock, Kind: trace.DecisionIdle, Reason: fmt.Sprintf("next arrival at %d", next.Timestamp())})
		return nil
	}
	if err := sim.countStep(); err != nil {
		return err
	}
	sim.install(js)
	return nil
}

// install gives the CPU to js and schedules its next interruption:
// completion, or for round robin the quantum expiry if that comes first.
func (sim *Simulator) install(js *jobState) {
	sim.generation++
	sim.running = js
	if js.firstStart == unset {
		js.firstStart = sim.Clock
	}
	sim.log.Record(trace.DecisionRecord{Clock: sim.Clock, Kind: trace.DecisionDispatch, JobID: js.job.ID, Remaining: js.remaining})
	logrus.Debugf("[tick %07d] Dispatch %s (remaining=%d)", sim.Clock, js.job.ID, js.remaining)

	if sim.policy.Kind == RoundRobin && sim.policy.Quantum < js.remaining {
		sim.Schedule(&QuantumExpiryEvent{time: sim.Clock + sim.policy.Quantum, state: js, generation: sim.generation})
		return
	}
	sim.Schedule(&CompletionEvent{time: sim.Clock + js.remaining, state: js, generation: sim.generation})
}

// preemptIfBetter re-runs pick after arrivals and hands the CPU to a
// different job if the policy now prefers it.
func (sim *Simulator) preemptIfBetter() error {
	if err := sim.countStep(); err != nil {
		return err
	}
	best := sim.ready.pick()
	if best == nil || best == sim.running {
		return nil
	}
	prev := sim.running
	sim.log.Record(trace.DecisionRecord{
		Clock:     sim.Clock,
		Kind:      trace.DecisionPreempt,
		JobID:     prev.job.ID,
		Remaining: prev.remaining,
		Reason:    fmt.Sprintf("%s has %d remaining", best.job.ID, best.remaining),
	})
	logrus.Debugf("[tick %07d] Preempt %s (remaining=%d) for %s (remaining=%d)",
		sim.Clock, prev.job.ID, prev.remaining, best.job.ID, best.remaining)
	sim.install(best)
	return nil
}

// advanceTo moves the clock to t, charging the elapsed ticks to the running
// job or to an Idle segment.
func (sim *Simulator) advanceTo(t int64) error {
	if t < sim.Clock {
		panic(fmt.Sprintf("advanceTo: time moved backwards from %d to %d", sim.Clock, t))
	}
	if sim.limits.MaxTicks > 0 && t > sim.limits.MaxTicks {
		return fmt.Errorf("%w: simulated time would reach %d, limit is %d", ErrTimeLimitExceeded, t, sim.limits.MaxTicks)
	}
	if t == sim.Clock {
		return nil
	}
	if sim.running != nil {
		sim.timeline.Append(trace.Segment{Start: sim.Clock, End: t, Label: sim.running.job.ID})
		sim.running.remaining -= t - sim.Clock
		if sim.running.remaining < 0 {
			panic(fmt.Sprintf("advanceTo: job %s overran its burst", sim.running.job.ID))
		}
	} else {
		sim.timeline.Append(trace.Segment{Start: sim.Clock, End: t, Label: trace.IdleLabel, Idle: true})
	}
	sim.Clock = t
	return nil
}

// recordCompletion notes a completion in the decision log.
func (sim *Simulator) recordCompletion(js *jobState) {
	sim.log.Record(trace.DecisionRecord{Clock: sim.Clock, Kind: trace.DecisionComplete, JobID: js.job.ID})
}

// recordRotation notes a quantum expiry in the decision log.
func (sim *Simulator) recordRotation(js *jobState) {
	sim.log.Record(trace.DecisionRecord{
		Clock:     sim.Clock,
		Kind:      trace.DecisionRotate,
		JobID:     js.job.ID,
		Remaining: js.remaining,
		Reason:    fmt.Sprintf("quantum %d expired", sim.policy.Quantum),
	})
}

func (sim *Simulator) buildResult() *Result {
	for _, js := range sim.states {
		if js.completion == unset {
			panic(fmt.Sprintf("buildResult: job %s never completed", js.job.ID))
		}
	}
	segments := sim.timeline.Segments
	jobs, agg := computeMetrics(sim.states, segments)
	res := &Result{
		Policy:    sim.policy,
		Trace:     segments,
		Jobs:      jobs,
		Aggregate: agg,
		Steps:     sim.steps,
	}
	if sim.traceLevel == trace.TraceLevelDecisions {
		res.Decisions = sim.log.Decisions
	}
	res.index = make(map[string]int, len(jobs))
	for i, m := range jobs {
		res.index[m.ID] = i
	}
	return res
}
