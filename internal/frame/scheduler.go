package frame

import (
	"sync"
	"time"
)

// Handle identifies a scheduled frame callback. The zero Handle is never
// issued.
type Handle uint64

type Scheduler interface {
	ScheduleFrame(fn func(now time.Time)) Handle
	CancelFrame(h Handle)
}

type queued struct {
	h  Handle
	fn func(time.Time)
}

// Queue is a manual Scheduler. Callbacks wait until Run is called.
type Queue struct {
	mu      sync.Mutex
	last    Handle
	pending []queued
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) ScheduleFrame(fn func(time.Time)) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last++
	q.pending = append(q.pending, queued{h: q.last, fn: fn})
	return q.last
}

func (q *Queue) CancelFrame(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.pending {
		if e.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Run fires the callbacks that were pending when it was called and returns
// how many ran. Callbacks scheduled while running wait for the next Run.
func (q *Queue) Run(now time.Time) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, e := range batch {
		e.fn(now)
	}
	return len(batch)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
