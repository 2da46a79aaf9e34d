package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func newTestModel(t *testing.T, duo bool) (*Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := tanks.New()
	if duo {
		game = tanks.NewDuo()
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 50, Seed: 99}
	m := NewModel(game, store, cfg)
	m.Init()
	return m, store
}

func (m *Model) tick(n int) {
	for i := 0; i < n; i++ {
		m.Update(TickMsg{Gen: m.gen})
	}
}

func TestModelQuitStoresRun(t *testing.T) {
	m, store := newTestModel(t, true)
	m.tick(10)

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}

	runs, err := store.RecentRuns("tanks_duo", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, expected 1", len(runs))
	}
	r := runs[0]
	if r.EndReason != storage.EndQuit || r.Seed != 99 || r.Ticks != 10 || r.Stage != 1 {
		t.Errorf("run = %+v", r)
	}

	// a second quit does not store again
	m.finish(storage.EndQuit)
	if runs, _ := store.RecentRuns("tanks_duo", 10); len(runs) != 1 {
		t.Errorf("runs = %d after second finish, expected 1", len(runs))
	}
}

func TestModelStaleTicksIgnored(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.Update(TickMsg{Gen: m.gen + 1})
	if got := m.game.(*tanks.Game).Session().State().Tick; got != 0 {
		t.Errorf("tick = %d after stale tick, expected 0", got)
	}
	m.tick(1)
	if got := m.game.(*tanks.Game).Session().State().Tick; got != 1 {
		t.Errorf("tick = %d, expected 1", got)
	}
}

func TestModelDirectionHeldUntilTimeout(t *testing.T) {
	m, _ := newTestModel(t, false)
	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }

	session := m.game.(*tanks.Game).Session()
	timers := session.Config().Timers
	m.tick(int(timers.SpawnAnimation/timers.Tick) + 2)

	// clear the path above the spawn point
	col := session.Config().Players.SpawnColumns[0]
	session.Grid().SetTile(session.Config().Map.Rows-2, col, tanks.Tile{Kind: tanks.Blank})
	startY := playerY(session)

	m.Update(runeKey("w"))
	m.tick(5)
	if playerY(session) >= startY {
		t.Fatalf("player did not move up: y %d -> %d", startY, playerY(session))
	}

	now = now.Add(DefaultHoldTimeout)
	m.tick(1)

	// released tanks creep on to the next half-tile boundary, then stop
	half := session.Config().Map.Cube / 2
	for i := 0; i < half && playerY(session)%half != 0; i++ {
		m.tick(1)
	}
	stopped := playerY(session)
	if stopped%half != 0 {
		t.Fatalf("y = %d, expected a multiple of %d after alignment", stopped, half)
	}
	m.tick(5)
	if playerY(session) != stopped {
		t.Errorf("y = %d after the hold expired, expected %d", playerY(session), stopped)
	}
}

func playerY(s *tanks.Session) int {
	for _, tk := range s.Tanks() {
		if tk.Kind == tanks.PlayerOne {
			return tk.Y
		}
	}
	return -1
}

func TestModelBackEmbedded(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.embedded = true
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("embedded model must not quit the program on back")
	}
	if !m.WentBack() {
		t.Error("WentBack() = false")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.tick(1)
	if !strings.Contains(m.View(), "Stage 1") {
		t.Error("view should contain the HUD")
	}
}
