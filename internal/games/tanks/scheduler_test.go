package tanks

import (
	"slices"
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var got []string

	s.After(60*time.Millisecond, firstEntityID, func() { got = append(got, "c") })
	s.After(20*time.Millisecond, firstEntityID, func() { got = append(got, "a") })
	s.After(20*time.Millisecond, firstEntityID, func() { got = append(got, "b") })

	for i := 0; i < 3; i++ {
		s.Advance()
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", got)
	}
}

func TestSchedulerTicks(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	tests := []struct {
		d    time.Duration
		want uint64
	}{
		{0, 1},
		{10 * time.Millisecond, 1},
		{20 * time.Millisecond, 1},
		{time.Second, 50},
		{3 * time.Second, 150},
	}
	for _, tt := range tests {
		if got := s.Ticks(tt.d); got != tt.want {
			t.Errorf("Ticks(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	n := 0
	s.Every(100*time.Millisecond, ownerStage, func() { n++ })
	for i := 0; i < 20; i++ {
		s.Advance()
	}
	if n != 4 {
		t.Errorf("fired %d times, want 4", n)
	}
}

func TestSchedulerCancelOwner(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	fired := false
	s.After(40*time.Millisecond, firstEntityID, func() { fired = true })
	kept := false
	s.After(40*time.Millisecond, firstEntityID+1, func() { kept = true })

	s.CancelOwner(firstEntityID)
	s.Advance()
	s.Advance()
	if fired {
		t.Error("canceled owner's job fired")
	}
	if !kept {
		t.Error("other owner's job should fire")
	}

	// jobs scheduled after the cancel belong to the new epoch
	s.After(20*time.Millisecond, firstEntityID, func() { fired = true })
	s.Advance()
	if !fired {
		t.Error("job scheduled after cancel should fire")
	}
}

func TestSchedulerJobCancel(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	n := 0
	j := s.Every(20*time.Millisecond, ownerSession, func() { n++ })
	s.Advance()
	j.Cancel()
	j.Cancel()
	s.Advance()
	s.Advance()
	if n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}

	var nilJob *Job
	nilJob.Cancel()
}

func TestSchedulerJobsFromCallbacksWait(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	inner := false
	s.After(20*time.Millisecond, ownerSession, func() {
		s.After(0, ownerSession, func() { inner = true })
	})
	s.Advance()
	if inner {
		t.Fatal("job scheduled by a callback ran in the same tick")
	}
	s.Advance()
	if !inner {
		t.Error("inner job should run on the next tick")
	}
}
