// Package rewrite provides the deferred rewrite-rule flush used when a module
// toggle or a path setting change invalidates the host's URL routing table.
package rewrite

import (
	"sync"

	"github.com/apex/log"
)

// Scheduler is a single-slot latch for the deferred rewrite-rule flush. Any
// number of Enqueue calls within a request window collapse into one pending
// flush, which the next request boundary consumes.
type Scheduler struct {
	mu      sync.Mutex
	pending bool
}

// NewScheduler creates an empty flush scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Enqueue marks a flush as pending. Enqueueing while a flush is already
// pending is a no-op.
func (s *Scheduler) Enqueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending {
		s.pending = true
		log.Debug("rewrite rule flush enqueued")
	}
}

// Pending reports whether a flush is waiting to be consumed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Consume clears the pending flag and reports whether a flush was pending.
// Exactly one caller observes true per enqueued flush.
func (s *Scheduler) Consume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.pending = false
	return was
}
