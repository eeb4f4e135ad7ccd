// Implements the RunQueue, the round robin FIFO of ready jobs.
// Jobs are enqueued on arrival and re-enqueued at the tail on quantum expiry.

package sim

import (
	"fmt"
	"strings"
)

// RunQueue is a FIFO of ready jobs ordered by enqueue time.
// Jobs enqueued at the same tick keep their insertion order.
type RunQueue struct {
	queue []*jobState
}

// Enqueue adds a job to the back of the queue.
func (rq *RunQueue) Enqueue(js *jobState) {
	if js == nil {
		panic("Enqueue: job must not be nil")
	}
	rq.queue = append(rq.queue, js)
}

func (rq *RunQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, js := range rq.queue {
		sb.WriteString(fmt.Sprintf("%s@%d", js.job.ID, js.enqueueTime))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of jobs in the queue.
func (rq *RunQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the job at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *RunQueue) Peek() *jobState {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Remove deletes the job with the given ID, preserving the order of the rest.
// Returns false if the job is not queued.
func (rq *RunQueue) Remove(id string) bool {
	for i, js := range rq.queue {
		if js.job.ID == id {
			rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
			return true
		}
	}
	return false
}
