package tanks

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultTanksConfig()
	a, err := NewSession(cfg, 12345, TwoPlayers, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewSession(cfg, 12345, TwoPlayers, nil)

	ia, ib := NewBot(1), NewBot(1)
	for tick := 0; tick < 3000; tick++ {
		ea := a.Step(ia.Next())
		eb := b.Step(ib.Next())
		if len(ea) != len(eb) {
			t.Fatalf("tick %d: %d vs %d events", tick, len(ea), len(eb))
		}
		if ha, hb := a.Snapshot().Hash(), b.Snapshot().Hash(); ha != hb {
			t.Fatalf("tick %d: snapshot hash %x vs %x", tick, ha, hb)
		}
	}
}

func TestSeedsDiverge(t *testing.T) {
	cfg := config.DefaultTanksConfig()
	a, _ := NewSession(cfg, 1, OnePlayer, nil)
	b, _ := NewSession(cfg, 2, OnePlayer, nil)
	in := core.NewMultiInputFrame()
	a.Step(in)
	b.Step(in)
	if a.Grid().Hash() == b.Grid().Hash() {
		t.Error("different seeds generated the same map")
	}
}

func TestLongRunInvariants(t *testing.T) {
	s, err := NewSession(config.DefaultTanksConfig(), 77, TwoPlayers, nil)
	if err != nil {
		t.Fatal(err)
	}
	script := NewBot(3)
	bounds := s.Grid().Bounds()
	cube := s.Config().Map.Cube
	gameOvers := 0

	for tick := 0; tick < 5000; tick++ {
		gameOvers += countEvents(s.Step(script.Next()), EventGameOver)

		for _, tk := range s.Tanks() {
			if !tk.Rect(cube).Within(s.Grid().Bounds()) {
				t.Fatalf("tick %d: tank %d at (%d,%d) outside the map", tick, tk.ID, tk.X, tk.Y)
			}
			if tk.AmmoAvailable < 0 || tk.AmmoAvailable > tk.AmmoCapacity {
				t.Fatalf("tick %d: tank %d ammo %d", tick, tk.ID, tk.AmmoAvailable)
			}
		}
		for _, p := range s.Projectiles() {
			if !p.Rect().Within(bounds) {
				t.Fatalf("tick %d: projectile %d outside the map", tick, p.ID)
			}
		}
		st := s.State()
		if st.RemainingToSpawn < 0 {
			t.Fatalf("tick %d: remaining %d", tick, st.RemainingToSpawn)
		}
		if st.Phase == PhaseRunning && s.ActiveEnemies() > s.enemies.MaxActive {
			t.Fatalf("tick %d: %d enemies over the cap", tick, s.ActiveEnemies())
		}
	}
	if gameOvers > 1 {
		t.Errorf("game_over emitted %d times", gameOvers)
	}
}

func TestRegistryCreatesBothModes(t *testing.T) {
	for _, id := range []string{"tanks", "tanks_duo"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID = %q, want %q", g.ID(), id)
		}
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 42})
	if g.err != nil {
		t.Fatalf("reset: %v", g.err)
	}
	return g
}

func TestGamePauseToggle(t *testing.T) {
	g := newTestGame(t)
	in := core.NewMultiInputFrame()
	g.Step(in)
	tick := g.Session().State().Tick

	pause := core.NewMultiInputFrame()
	pause.Press(core.Player1, core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	g.Step(in)
	g.Step(in)
	if g.Session().State().Tick != tick {
		t.Error("simulation advanced while paused")
	}
	g.Step(pause)
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	s := g.Session()
	s.state.Slots[0].Lives = 1
	s.destroyTank(s.tank(s.state.Slots[0].TankID), 0, 0)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	restart := core.NewMultiInputFrame()
	restart.Press(core.Player1, core.ActionRestart)
	g.Step(restart)
	if g.State().GameOver || g.Session() == s {
		t.Error("restart should start a new session")
	}
}

type recordingObserver struct {
	ticks  int
	events int
}

func (r *recordingObserver) ObserveTick(_ time.Duration, events []Event, _ SessionState) {
	r.ticks++
	r.events += len(events)
}

func TestGameNotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	g := newTestGame(t)
	in := core.NewMultiInputFrame()
	total := 0
	for i := 0; i < 10; i++ {
		total += g.Step(in).Events
	}
	if obs.ticks != 10 || obs.events != total {
		t.Errorf("observer saw %d ticks %d events, want 10 and %d", obs.ticks, obs.events, total)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	g.Step(core.NewMultiInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Stage 1") {
		t.Errorf("HUD = %q, want stage", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "✦") {
		t.Error("appearing tanks should be drawn")
	}
}

func TestGameScreenTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	g.Step(core.NewMultiInputFrame())

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected size warning")
	}
}
