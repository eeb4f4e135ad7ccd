// Package sim provides the discrete-event engine of the single-CPU process
// scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - job.go: Job inputs, per-job run state and job-set validation
//   - readyset.go: the ready set and the pure pick rule of each policy
//   - event.go: Event types that drive the simulation (Arrival, QuantumExpiry, Completion)
//   - simulator.go: the event loop, dispatch, SRT preemption and time advance
//   - metrics.go: per-job and aggregate metrics derived from a finished run
//
// # Architecture
//
// The sim package owns the engine; supporting code lives in sub-packages:
//   - sim/trace/: timeline segments and decision records
//   - sim/workload/: job-set files and seeded random job generation
//   - sim/report/: Gantt chart, metrics table and JSON/YAML export
//
// A run is a pure function of its inputs: the same jobs, policy and limits
// always yield the same Result, whatever the input order of the jobs.
package sim
