// Package reveal staggers grid insertions and cancels them when a newer
// query replaces the grid.
//
// Every query starts a new generation. Tasks carry the generation they were
// scheduled under and are dropped if it is no longer current when they fire,
// so a slow card from an old query can never land in a fresh grid.
package reveal

import (
	"sync"
	"time"
)

// DefaultStep is the delay added per card index.
const DefaultStep = 90 * time.Millisecond

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc runs f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Scheduler)

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) {
		s.after = fn
	}
}

// Scheduler hands out generations and runs delayed tasks for the current one.
type Scheduler struct {
	mu      sync.Mutex
	step    time.Duration
	gen     uint64
	pending []Timer
	after   AfterFunc
}

func New(step time.Duration, opts ...Option) *Scheduler {
	if step < 0 {
		step = 0
	}
	s := &Scheduler{step: step, after: realAfterFunc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step returns the per-index delay.
func (s *Scheduler) Step() time.Duration {
	return s.step
}

// Delay returns how long the card at index waits before it is revealed.
func (s *Scheduler) Delay(index int) time.Duration {
	return time.Duration(index) * s.step
}

// Begin starts a new generation, stops every pending timer and returns the
// new generation.
func (s *Scheduler) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	return s.gen
}

// Cancel invalidates the current generation without starting a new query.
func (s *Scheduler) Cancel() {
	s.Begin()
}

// Current returns the active generation.
func (s *Scheduler) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Valid reports whether gen is still the active generation.
func (s *Scheduler) Valid(gen uint64) bool {
	return s.Current() == gen
}

// Schedule runs fn after Delay(index) if gen is still current at that point.
// It returns false, scheduling nothing, when gen is already stale. fn must
// re-check Valid under whatever lock guards the state it touches.
func (s *Scheduler) Schedule(gen uint64, index int, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	t := s.after(s.Delay(index), func() {
		if s.Valid(gen) {
			fn()
		}
	})
	s.pending = append(s.pending, t)
	return true
}

func (s *Scheduler) stopLocked() {
	for _, t := range s.pending {
		t.Stop()
	}
	s.pending = nil
}
