package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func eventsOf(frame core.MultiInputFrame, p core.PlayerID) []core.KeyEvent {
	return frame.Player(p).Events()
}

func TestHoldTrackerAutoRepeat(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	frame := core.NewMultiInputFrame()
	t0 := time.Unix(0, 0)

	h.Press(&frame, core.Player1, core.ActionUp, t0)
	h.Press(&frame, core.Player1, core.ActionUp, t0.Add(30*time.Millisecond))
	h.Press(&frame, core.Player1, core.ActionUp, t0.Add(60*time.Millisecond))

	evs := eventsOf(frame, core.Player1)
	if len(evs) != 1 || evs[0].Action != core.ActionUp || evs[0].Released {
		t.Fatalf("events = %v, expected a single press", evs)
	}

	frame.Clear()
	h.Expire(&frame, t0.Add(150*time.Millisecond))
	if len(eventsOf(frame, core.Player1)) != 0 {
		t.Fatal("refreshed key released early")
	}
	h.Expire(&frame, t0.Add(160*time.Millisecond))
	evs = eventsOf(frame, core.Player1)
	if len(evs) != 1 || !evs[0].Released {
		t.Fatalf("events = %v, expected a release", evs)
	}
	if h.Held(core.Player1, core.ActionUp) {
		t.Error("Held() = true after release")
	}
}

func TestHoldTrackerRepressMovesToTop(t *testing.T) {
	h := NewHoldTracker(time.Second)
	frame := core.NewMultiInputFrame()
	t0 := time.Unix(0, 0)

	h.Press(&frame, core.Player1, core.ActionLeft, t0)
	h.Press(&frame, core.Player1, core.ActionUp, t0)
	h.Press(&frame, core.Player1, core.ActionLeft, t0)

	evs := eventsOf(frame, core.Player1)
	want := []core.Action{core.ActionLeft, core.ActionUp, core.ActionLeft}
	if len(evs) != len(want) {
		t.Fatalf("events = %v, expected %v", evs, want)
	}
	for i, a := range want {
		if evs[i].Action != a || evs[i].Released {
			t.Errorf("event %d = %v, expected press of %v", i, evs[i], a)
		}
	}
}

func TestHoldTrackerPlayersIndependent(t *testing.T) {
	h := NewHoldTracker(time.Second)
	frame := core.NewMultiInputFrame()
	t0 := time.Unix(0, 0)

	h.Press(&frame, core.Player1, core.ActionUp, t0)
	h.Press(&frame, core.Player2, core.ActionUp, t0)
	if len(eventsOf(frame, core.Player2)) != 1 {
		t.Fatal("player two press swallowed")
	}

	frame.Clear()
	h.ReleaseAll(&frame)
	if len(eventsOf(frame, core.Player1)) != 1 || len(eventsOf(frame, core.Player2)) != 1 {
		t.Error("ReleaseAll() should release both players")
	}
}

func TestHoldTrackerDefaultTimeout(t *testing.T) {
	h := NewHoldTracker(0)
	if h.timeout != DefaultHoldTimeout {
		t.Errorf("timeout = %v, expected %v", h.timeout, DefaultHoldTimeout)
	}
}
