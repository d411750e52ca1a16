// Package timer provides the registry of pending delayed and repeating callbacks.
//
// The registry runs on a virtual clock that only moves when Advance is called, so
// every callback fires on the goroutine that drives the registry. The show loop
// advances it with wall-clock deltas; tests advance it directly.
package timer

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// minInterval is the floor applied to repeating intervals.
const minInterval = time.Millisecond

type entry struct {
	handle   Handle
	due      time.Duration
	interval time.Duration // zero for one-shot entries
	seq      uint64
	fn       func()
	index    int
}

// Registry tracks every outstanding callback so they can be cancelled together.
// It is not safe for concurrent use.
type Registry struct {
	now    time.Duration
	nextID Handle
	seq    uint64
	queue  entryQueue
	live   map[Handle]*entry
}

// New creates an empty registry with its clock at zero.
func New() *Registry {
	return &Registry{
		live: make(map[Handle]*entry),
	}
}

// Schedule runs fn once after delay. A negative delay is treated as zero.
func (r *Registry) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return r.add(r.now+delay, 0, fn)
}

// ScheduleRepeating runs fn every interval until the handle is cancelled.
func (r *Registry) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	if interval < minInterval {
		interval = minInterval
	}
	return r.add(r.now+interval, interval, fn)
}

func (r *Registry) add(due, interval time.Duration, fn func()) Handle {
	r.nextID++
	r.seq++
	e := &entry{
		handle:   r.nextID,
		due:      due,
		interval: interval,
		seq:      r.seq,
		fn:       fn,
	}
	heap.Push(&r.queue, e)
	r.live[e.handle] = e
	return e.handle
}

// Cancel removes the callback behind h. It reports whether anything was pending;
// cancelling a fired, cancelled or zero handle is a no-op.
func (r *Registry) Cancel(h Handle) bool {
	e, ok := r.live[h]
	if !ok {
		return false
	}
	delete(r.live, h)
	if e.index >= 0 {
		heap.Remove(&r.queue, e.index)
	}
	return true
}

// CancelAll removes every pending callback and returns how many were dropped.
func (r *Registry) CancelAll() int {
	n := len(r.live)
	r.live = make(map[Handle]*entry)
	r.queue = r.queue[:0]
	return n
}

// Pending returns the number of outstanding handles.
func (r *Registry) Pending() int {
	return len(r.live)
}

// IsPending reports whether h is still outstanding.
func (r *Registry) IsPending(h Handle) bool {
	_, ok := r.live[h]
	return ok
}

// Now returns the registry's virtual time.
func (r *Registry) Now() time.Duration {
	return r.now
}

// NextDue returns the due time of the earliest pending callback.
func (r *Registry) NextDue() (time.Duration, bool) {
	if len(r.queue) == 0 {
		return 0, false
	}
	return r.queue[0].due, true
}

// Advance moves the clock forward by d, firing every callback that falls due on
// the way in due order. Callbacks scheduled while advancing fire in the same call
// if they fall due before the target time. Returns the number of callbacks fired.
func (r *Registry) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := r.now + d
	fired := 0

	for len(r.queue) > 0 {
		e := r.queue[0]
		if e.due > target {
			break
		}
		r.now = e.due

		if e.interval > 0 {
			// Re-queue before running so the callback can cancel itself.
			r.seq++
			e.due += e.interval
			e.seq = r.seq
			heap.Fix(&r.queue, 0)
		} else {
			heap.Pop(&r.queue)
			delete(r.live, e.handle)
		}

		e.fn()
		fired++
	}

	r.now = target
	return fired
}

// entryQueue orders entries by due time, then by scheduling order.
type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q entryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *entryQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
