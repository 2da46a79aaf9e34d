package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:   "tanks_duo",
		Seed:     42,
		Stage:    3,
		Ticks:    9000,
		Scores:   [2]int{1200, 450},
		Kills:    [3]int{7, 3, 1},
		Duration: 3 * time.Minute,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun() id = %q, expected a UUID", id)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RunByID() returned nil")
	}
	if r.Stage != 3 || r.Seed != 42 || r.Ticks != 9000 {
		t.Errorf("RunByID() = %+v", r)
	}
	if r.Scores != [2]int{1200, 450} || r.Kills != [3]int{7, 3, 1} {
		t.Errorf("scores=%v kills=%v", r.Scores, r.Kills)
	}
	if r.Total() != 1650 {
		t.Errorf("Total() = %d, expected 1650", r.Total())
	}
	if r.Duration != 3*time.Minute {
		t.Errorf("Duration = %v, expected 3m", r.Duration)
	}
	if r.EndReason != EndGameOver {
		t.Errorf("EndReason = %q, expected default %q", r.EndReason, EndGameOver)
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	r, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r != nil {
		t.Errorf("RunByID() = %+v, expected nil", r)
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)

	run := Run{ID: uuid.NewString(), GameID: "tanks", Stage: 1}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Error("SaveRun() with a duplicate id should fail")
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for stage := 1; stage <= 5; stage++ {
		game := "tanks"
		if stage%2 == 0 {
			game = "tanks_duo"
		}
		if _, err := store.SaveRun(Run{GameID: game, Stage: stage, EndReason: EndQuit}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	// same timestamp, newest insert first
	if runs[0].Stage != 5 {
		t.Errorf("first run stage = %d, expected 5", runs[0].Stage)
	}

	solo, err := store.RecentRuns("tanks", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(solo) != 3 {
		t.Errorf("Expected 3 solo runs, got %d", len(solo))
	}

	best, err := store.BestStage("tanks_duo")
	if err != nil {
		t.Fatalf("BestStage() failed: %v", err)
	}
	if best != 4 {
		t.Errorf("BestStage() = %d, expected 4", best)
	}
}
