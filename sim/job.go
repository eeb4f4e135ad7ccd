package sim

import "math"

// MaxJobCount is the largest job set the simulator accepts.
// The same bound applies to the remembered job count in the settings file.
const MaxJobCount = 65535

// Job describes one single-burst unit of CPU work.
// Jobs are immutable inputs; all mutable run state lives in jobState.
type Job struct {
	ID       string `json:"id" yaml:"id"`
	Arrival  int64  `json:"arrival" yaml:"arrival"`   // tick at which the job becomes eligible to run
	Burst    int64  `json:"burst" yaml:"burst"`       // total CPU ticks required
	Priority int64  `json:"priority" yaml:"priority"` // reserved; not consulted by the built-in policies
}

// unset marks a tick field that has not been recorded yet.
const unset = int64(-1)

// jobState is the per-job bookkeeping owned by the Simulator during a run.
//
// Invariants:
//   - 0 <= remaining <= job.Burst
//   - firstStart != unset implies the job has held the CPU
//   - completion != unset implies remaining == 0
type jobState struct {
	job         Job
	remaining   int64
	firstStart  int64
	completion  int64
	enqueueTime int64
}

func newJobState(j Job) *jobState {
	return &jobState{
		job:         j,
		remaining:   j.Burst,
		firstStart:  unset,
		completion:  unset,
		enqueueTime: j.Arrival,
	}
}

// validateJobs checks per-job invariants and identifier uniqueness.
// Jobs are checked in input order so the first offending job is reported.
func validateJobs(jobs []Job) error {
	if len(jobs) > MaxJobCount {
		return invalidConfigf("job set has %d jobs, limit is %d", len(jobs), MaxJobCount)
	}
	seen := make(map[string]struct{}, len(jobs))
	for _, j := range jobs {
		switch {
		case j.ID == "":
			return &InvalidJobError{ID: j.ID, Reason: "empty identifier"}
		case j.Burst <= 0:
			return &InvalidJobError{ID: j.ID, Reason: "burst must be positive"}
		case j.Arrival < 0:
			return &InvalidJobError{ID: j.ID, Reason: "arrival must be non-negative"}
		}
		if _, dup := seen[j.ID]; dup {
			return &DuplicateJobIDError{ID: j.ID}
		}
		seen[j.ID] = struct{}{}
	}
	return checkHorizon(jobs)
}

// checkHorizon bounds the latest tick a run can reach, the last arrival plus
// every burst, so that event times and the per-job metric sums fit in an int64.
func checkHorizon(jobs []Job) error {
	limit := int64(math.MaxInt64)
	if n := int64(len(jobs)); n > 1 {
		limit /= n
	}
	var lastArrival, totalBurst int64
	for _, j := range jobs {
		if j.Arrival > math.MaxInt64-j.Burst {
			return &InvalidJobError{ID: j.ID, Reason: "arrival+burst overflows"}
		}
		if j.Burst > limit-totalBurst {
			return &InvalidJobError{ID: j.ID, Reason: "total burst time overflows"}
		}
		totalBurst += j.Burst
		lastArrival = max(lastArrival, j.Arrival)
		if lastArrival > limit-totalBurst {
			return &InvalidJobError{ID: j.ID, Reason: "schedule end time overflows"}
		}
	}
	return nil
}
