package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	store.SaveScore("tanks", 1500)
	store.SaveScore("tanks", 300)
	if _, err := store.SaveRun(storage.Run{GameID: "tanks", Stage: 4, Scores: [2]int{1500, 0}}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return store
}

func TestScoreboardToggleRuns(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 100, 30)
	if m.games[m.gameCursor].ID != "tanks" {
		t.Fatalf("first game = %q, expected tanks", m.games[m.gameCursor].ID)
	}
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("score rows = %d, expected 2", got)
	}

	next, _ := m.Update(runeKey("v"))
	m = next.(ScoreboardModel)
	if !m.showRuns {
		t.Fatal("v should switch to the runs view")
	}
	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][1] != "4" || rows[0][2] != "1,500" {
		t.Errorf("run rows = %v", rows)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title should switch to runs")
	}
}

func TestScoreboardNextGame(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 100, 30)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != "tanks_duo" {
		t.Errorf("game = %q, expected tanks_duo", m.games[m.gameCursor].ID)
	}
	if len(m.table.Rows()) != 0 {
		t.Error("duo has no scores")
	}
}

func TestMenuShowsStatsAndSelects(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel(seededStore(t), cfg)
	if m.items[0].HighScore != 1500 || m.items[0].BestStage != 4 {
		t.Errorf("item = %+v, expected best 1500 at stage 4", m.items[0])
	}
	if !strings.Contains(m.View(), "1,500") {
		t.Error("menu should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil || m.Selected().GameID != "tanks_duo" {
		t.Errorf("Selected() = %+v, expected tanks_duo", m.Selected())
	}
}
