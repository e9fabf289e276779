package formula

import (
	"sync"
	"time"
)

// Default debounce delays. Recalc fires quickly so formula edits feel
// live; realign waits longer so a burst of applied values settles
// before cabinets are re-laid out.
const (
	DefaultRecalcDelay  = 300 * time.Millisecond
	DefaultRealignDelay = 800 * time.Millisecond
)

// Scheduler coalesces rapid edits into single recalc and realign
// fires. Re-arming a pending trigger supersedes it, so only the last
// edit in a burst takes effect. Both callbacks run on a timer
// goroutine; the hosting layer is responsible for serializing them
// against its own mutations.
type Scheduler struct {
	mu sync.Mutex

	recalcDelay  time.Duration
	realignDelay time.Duration
	onRecalc     func()
	onRealign    func()

	recalcTimer  *time.Timer
	realignTimer *time.Timer
	recalcGen    uint64
	realignGen   uint64
	closed       bool
}

// NewScheduler builds a scheduler with the given delays and callbacks.
// Non-positive delays fall back to the defaults; nil callbacks are
// never invoked.
func NewScheduler(recalcDelay, realignDelay time.Duration, onRecalc, onRealign func()) *Scheduler {
	if recalcDelay <= 0 {
		recalcDelay = DefaultRecalcDelay
	}
	if realignDelay <= 0 {
		realignDelay = DefaultRealignDelay
	}
	return &Scheduler{
		recalcDelay:  recalcDelay,
		realignDelay: realignDelay,
		onRecalc:     onRecalc,
		onRealign:    onRealign,
	}
}

// Recalc arms the short-delay recompute trigger, superseding any
// pending one.
func (s *Scheduler) Recalc() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.onRecalc == nil {
		return
	}
	if s.recalcTimer != nil {
		s.recalcTimer.Stop()
	}
	s.recalcGen++
	gen := s.recalcGen
	s.recalcTimer = time.AfterFunc(s.recalcDelay, func() {
		if s.current(&s.recalcGen, gen) {
			s.onRecalc()
		}
	})
}

// Realign arms the long-delay cohort realignment trigger, superseding
// any pending one.
func (s *Scheduler) Realign() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.onRealign == nil {
		return
	}
	if s.realignTimer != nil {
		s.realignTimer.Stop()
	}
	s.realignGen++
	gen := s.realignGen
	s.realignTimer = time.AfterFunc(s.realignDelay, func() {
		if s.current(&s.realignGen, gen) {
			s.onRealign()
		}
	})
}

// current reports whether a fired timer still represents the latest
// trigger. A timer that lost a Stop race to a newer arm sees a bumped
// generation and does nothing.
func (s *Scheduler) current(gen *uint64, seen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && *gen == seen
}

// Close cancels both pending triggers. Further schedules are no-ops.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.recalcTimer != nil {
		s.recalcTimer.Stop()
	}
	if s.realignTimer != nil {
		s.realignTimer.Stop()
	}
}
