package rewrite

import "testing"

func TestScheduler_EnqueueCollapses(t *testing.T) {
	s := NewScheduler()
	if s.Pending() {
		t.Fatal("new scheduler should have nothing pending")
	}

	s.Enqueue()
	s.Enqueue()
	s.Enqueue()

	if !s.Pending() {
		t.Fatal("expected a pending flush after enqueue")
	}
	if !s.Consume() {
		t.Fatal("expected first consume to observe the pending flush")
	}
	if s.Consume() {
		t.Fatal("expected repeated enqueues to collapse into a single flush")
	}
	if s.Pending() {
		t.Fatal("expected nothing pending after consume")
	}
}

func TestScheduler_ConsumeWithoutEnqueue(t *testing.T) {
	s := NewScheduler()
	if s.Consume() {
		t.Fatal("consume on an empty scheduler should report false")
	}
}
