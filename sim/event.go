package sim

import (
	"container/heap"

	"github.com/sirupsen/logrus"
)

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks), a Priority used to order events
// sharing a timestamp, and an Execute method that advances simulator state.
type Event interface {
	Timestamp() int64
	Priority() int // 0=Completion, 1=QuantumExpiry, 2=Arrival
	Execute(*Simulator)
}

// eventEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamp and priority are equal.
type eventEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, Priority, seqID).
// Implements heap.Interface.
type EventQueue []eventEntry

func (q EventQueue) Len() int { return len(q) }

func (q EventQueue) Less(i, j int) bool {
	if q[i].event.Timestamp() != q[j].event.Timestamp() {
		return q[i].event.Timestamp() < q[j].event.Timestamp()
	}
	if q[i].event.Priority() != q[j].event.Priority() {
		return q[i].event.Priority() < q[j].event.Priority()
	}
	return q[i].seqID < q[j].seqID
}

func (q EventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *EventQueue) Push(x any) {
	*q = append(*q, x.(eventEntry))
}

func (q *EventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// peek returns the next event without removing it, or nil if the queue is empty.
func (q EventQueue) peek() Event {
	if len(q) == 0 {
		return nil
	}
	return q[0].event
}

// ArrivalEvent admits a job into the ready set.
// Priority 2 (lowest): a job rotated or completed at the same tick is handled first.
type ArrivalEvent struct {
	time  int64
	state *jobState
}

func (e *ArrivalEvent) Timestamp() int64 { return e.time }
func (e *ArrivalEvent) Priority() int    { return 2 }

// Execute admits the job and, under a preemptive policy, flags the running job for re-evaluation.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival: %s at %d ticks", e.state.job.ID, e.time)
	sim.ready.admit(e.state, e.time)
	if sim.running != nil && sim.policy.Preemptive() {
		sim.reevaluate = true
	}
}

// QuantumExpiryEvent fires when a round robin job has used up its time slice.
// Priority 1: after completions, before arrivals.
type QuantumExpiryEvent struct {
	time       int64
	state      *jobState
	generation int64
}

func (e *QuantumExpiryEvent) Timestamp() int64 { return e.time }
func (e *QuantumExpiryEvent) Priority() int    { return 1 }

// Execute moves the running job to the tail of the run queue.
func (e *QuantumExpiryEvent) Execute(sim *Simulator) {
	if e.generation != sim.generation {
		return
	}
	logrus.Debugf("<< QuantumExpiry: %s at %d ticks, remaining=%d", e.state.job.ID, e.time, e.state.remaining)
	sim.recordRotation(e.state)
	sim.ready.rotate(e.state.job.ID, e.time)
	sim.running = nil
}

// CompletionEvent fires when the running job's remaining work reaches zero.
// Priority 0 (highest).
type CompletionEvent struct {
	time       int64
	state      *jobState
	generation int64
}

func (e *CompletionEvent) Timestamp() int64 { return e.time }
func (e *CompletionEvent) Priority() int    { return 0 }

// Execute records the completion tick and releases the CPU.
func (e *CompletionEvent) Execute(sim *Simulator) {
	if e.generation != sim.generation {
		return
	}
	logrus.Debugf("<< Completion: %s at %d ticks", e.state.job.ID, e.time)
	e.state.completion = e.time
	sim.recordCompletion(e.state)
	sim.ready.remove(e.state.job.ID)
	sim.running = nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.events, eventEntry{event: ev, seqID: sim.nextSeqID()})
}

func (sim *Simulator) nextSeqID() int64 {
	id := sim.seq
	sim.seq++
	return id
}
