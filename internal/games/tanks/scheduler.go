package tanks

import (
	"container/heap"
	"time"
)

// Reserved owners for jobs that are not tied to a single entity. Entity IDs
// start above them.
const (
	ownerSession EntityID = iota + 1 // lives for the whole session
	ownerStage                       // canceled when a stage ends
	ownerFreeze
	ownerFortify
	firstEntityID
)

// Job is a scheduled callback. The handle can cancel it before it fires.
type Job struct {
	at       uint64
	seq      uint64
	every    uint64 // re-arm period in ticks, zero for one-shot
	owner    EntityID
	epoch    uint64
	fn       func()
	canceled bool
	index    int
}

// Cancel prevents the job from firing again. Canceling twice, or canceling a
// job that already fired, is a no-op.
func (j *Job) Cancel() {
	if j != nil {
		j.canceled = true
	}
}

type jobHeap []*Job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x any) {
	j := x.(*Job)
	j.index = len(*h)
	*h = append(*h, j)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	j.index = -1
	*h = old[:n-1]
	return j
}

// Scheduler is a deadline queue measured in simulation ticks. Every job
// carries its owner's epoch at scheduling time; CancelOwner bumps the epoch,
// so stale jobs of a destroyed entity are discarded when they surface
// instead of being searched for.
type Scheduler struct {
	tick   time.Duration
	now    uint64
	seq    uint64
	queue  jobHeap
	epochs map[EntityID]uint64
}

// NewScheduler creates a scheduler whose durations convert to ticks of the
// given length.
func NewScheduler(tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = 20 * time.Millisecond
	}
	return &Scheduler{
		tick:   tick,
		epochs: make(map[EntityID]uint64),
	}
}

// Now returns the current tick.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Ticks converts a duration to a whole number of ticks, at least one.
func (s *Scheduler) Ticks(d time.Duration) uint64 {
	n := uint64(d / s.tick)
	if n < 1 {
		n = 1
	}
	return n
}

// After schedules fn once, d from now.
func (s *Scheduler) After(d time.Duration, owner EntityID, fn func()) *Job {
	return s.push(s.Ticks(d), 0, owner, fn)
}

// Every schedules fn every d, first firing d from now.
func (s *Scheduler) Every(d time.Duration, owner EntityID, fn func()) *Job {
	n := s.Ticks(d)
	return s.push(n, n, owner, fn)
}

func (s *Scheduler) push(delay, every uint64, owner EntityID, fn func()) *Job {
	s.seq++
	j := &Job{
		at:    s.now + delay,
		seq:   s.seq,
		every: every,
		owner: owner,
		epoch: s.epochs[owner],
		fn:    fn,
	}
	heap.Push(&s.queue, j)
	return j
}

// CancelOwner invalidates every pending job of the owner.
func (s *Scheduler) CancelOwner(owner EntityID) {
	s.epochs[owner]++
}

// Advance moves time forward one tick and runs every due job in deadline
// order. Jobs scheduled by a callback never run in the same Advance.
func (s *Scheduler) Advance() int {
	s.now++
	ran := 0
	for len(s.queue) > 0 && s.queue[0].at <= s.now {
		j := heap.Pop(&s.queue).(*Job)
		if j.canceled || j.epoch != s.epochs[j.owner] {
			continue
		}
		if j.every > 0 {
			s.seq++
			j.at += j.every
			j.seq = s.seq
			heap.Push(&s.queue, j)
		}
		j.fn()
		ran++
	}
	return ran
}

// Pending returns the number of queued jobs, including stale ones not yet
// discarded.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Reset drops every job and rewinds the clock.
func (s *Scheduler) Reset() {
	s.now = 0
	s.seq = 0
	s.queue = nil
	s.epochs = make(map[EntityID]uint64)
}
