package sim

// readySet holds the jobs that have arrived and not yet completed,
// including the one currently holding the CPU.
//
// Two representations coexist: an ID-indexed member map scanned for the
// minimum under FCFS/SJN/SRT, and a FIFO RunQueue for round robin.
// pick never mutates state; only admit, remove and rotate do.
type readySet struct {
	kind    PolicyKind
	members map[string]*jobState
	fifo    RunQueue
}

func newReadySet(kind PolicyKind) *readySet {
	return &readySet{
		kind:    kind,
		members: make(map[string]*jobState),
	}
}

// admit inserts an arrived job. No-op if the job is already a member.
func (rs *readySet) admit(js *jobState, now int64) {
	if _, ok := rs.members[js.job.ID]; ok {
		return
	}
	js.enqueueTime = now
	rs.members[js.job.ID] = js
	if rs.kind == RoundRobin {
		rs.fifo.Enqueue(js)
	}
}

// remove drops a job from the set. No-op if the job is not a member.
func (rs *readySet) remove(id string) {
	if _, ok := rs.members[id]; !ok {
		return
	}
	delete(rs.members, id)
	if rs.kind == RoundRobin {
		rs.fifo.Remove(id)
	}
}

// rotate moves a round robin job to the tail of the queue with a fresh enqueue time.
func (rs *readySet) rotate(id string, now int64) {
	js, ok := rs.members[id]
	if !ok || rs.kind != RoundRobin {
		return
	}
	rs.fifo.Remove(id)
	js.enqueueTime = now
	rs.fifo.Enqueue(js)
}

func (rs *readySet) size() int {
	return len(rs.members)
}

func (rs *readySet) contains(id string) bool {
	_, ok := rs.members[id]
	return ok
}

// pick returns the job that should hold the CPU next, or nil if the set is empty.
//
//	FCFS: earliest arrival, then smaller ID
//	SJN:  smallest remaining (equal to burst), then earliest arrival, then smaller ID
//	SRT:  smallest remaining, then earliest arrival, then smaller ID
//	RR:   head of the FIFO
func (rs *readySet) pick() *jobState {
	if rs.kind == RoundRobin {
		return rs.fifo.Peek()
	}
	var best *jobState
	for _, js := range rs.members {
		if best == nil || rs.before(js, best) {
			best = js
		}
	}
	return best
}

// before reports whether a should be chosen over b.
// Map iteration order is random, so the comparison must be a strict total order.
func (rs *readySet) before(a, b *jobState) bool {
	if rs.kind == SJN || rs.kind == SRT {
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
	}
	if a.job.Arrival != b.job.Arrival {
		return a.job.Arrival < b.job.Arrival
	}
	return a.job.ID < b.job.ID
}
