// Package debounce coalesces bursts of notifications for the same key
// into one callback after a quiet period.
package debounce

import (
	"sync"
	"time"

	"github.com/bnema/duotone/internal/application/port"
)

type pending struct {
	timer *time.Timer
	seq   uint64
}

// Scheduler is a key-addressed single-shot timer set. Scheduling a key
// that already has a pending timer atomically cancels and replaces it, so
// at most one timer is live per key. Callbacks fire through the
// dispatcher, in the same context that schedules them.
type Scheduler struct {
	dispatch port.Dispatcher

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pending
}

// NewScheduler creates a scheduler firing callbacks through dispatch.
func NewScheduler(dispatch port.Dispatcher) *Scheduler {
	return &Scheduler{
		dispatch: dispatch,
		pending:  make(map[string]*pending),
	}
}

// Schedule arranges for fn to run once after delay, replacing any timer
// already pending for key. fn receives no snapshot: it re-reads current
// state at fire time, so intermediate values inside the quiet window are
// dropped.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}

	s.seq++
	seq := s.seq
	p := &pending{seq: seq}
	p.timer = time.AfterFunc(delay, func() {
		// The timer goroutine only posts; the dispatched closure decides
		// whether it still owns the key, so a cancel or reschedule that
		// raced the firing wins.
		s.dispatch.Post(func() {
			if !s.claim(key, seq) {
				return
			}
			fn()
		})
	})
	s.pending[key] = p
}

// claim removes the pending entry for key if it still belongs to seq.
func (s *Scheduler) claim(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[key]
	if !ok || p.seq != seq {
		return false
	}
	delete(s.pending, key)
	return true
}

// CancelAll cancels every pending timer. Late fires that already left
// their timer goroutine no-op when they find their entry gone.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
