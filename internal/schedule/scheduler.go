// Package schedule runs one-shot callbacks against simulated time. Nothing
// happens on its own: the host advances the clock once per tick and due
// callbacks fire synchronously inside Advance.
package schedule

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback
type Timer struct {
	at       time.Duration
	seq      uint64
	fn       func()
	index    int
	canceled bool
	fired    bool
}

// Active reports whether the timer is still waiting to fire
func (t *Timer) Active() bool {
	return t != nil && !t.canceled && !t.fired
}

// Deadline is the simulated time the timer fires at
func (t *Timer) Deadline() time.Duration {
	return t.at
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a single-threaded timer queue over simulated time
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now is the simulated time advanced so far
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once delay has elapsed. A delay of zero or
// less fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Timer{at: s.now + delay, seq: s.seq, fn: fn}
	heap.Push(&s.timers, t)
	return t
}

// Cancel stops t from firing. It returns false if t already fired or was
// already canceled.
func (s *Scheduler) Cancel(t *Timer) bool {
	if !t.Active() {
		return false
	}
	t.canceled = true
	if t.index >= 0 {
		heap.Remove(&s.timers, t.index)
	}
	return true
}

// Advance moves the clock forward by dt and fires every timer whose
// deadline is reached, ordered by deadline then by scheduling order.
// Callbacks may schedule or cancel timers; new timers that fall due within
// this step fire in the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for len(s.timers) > 0 && s.timers[0].at <= target {
		t := heap.Pop(&s.timers).(*Timer)
		if t.at > s.now {
			s.now = t.at
		}
		t.fired = true
		t.fn()
	}
	s.now = target
}

// Pending is the number of timers waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.timers)
}
