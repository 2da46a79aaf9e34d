package tanks

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Observer receives every simulated tick. Implementations must not retain
// the events slice past the call.
type Observer interface {
	ObserveTick(elapsed time.Duration, events []Event, state SessionState)
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var (
	logger   *log.Logger
	observer Observer
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new sessions.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetObserver installs an observer for every game created afterwards.
func SetObserver(o Observer) {
	observer = o
}

// HUD rows above the map.
const hudHeight = 2

// Game adapts a Session to the platform's game interface.
type Game struct {
	gameType GameType
	runtime  core.RuntimeConfig
	cfg      config.TanksConfig
	session  *Session
	observer Observer
	paused   bool
	err      error
	events   []Event

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a one-player game.
func New() *Game {
	return &Game{gameType: OnePlayer}
}

// NewDuo creates a two-player game.
func NewDuo() *Game {
	return &Game{gameType: TwoPlayers}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.gameType == TwoPlayers {
		return "tanks_duo"
	}
	return "tanks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.gameType == TwoPlayers {
		return "Tanks (2 Players)"
	}
	return "Tanks"
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.events = nil
	g.observer = observer

	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to default tanks config", "err", err)
		}
		cfg = config.DefaultTanksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.minScreenW = cfg.Map.Columns * TileW
	g.minScreenH = cfg.Map.Rows*TileH + hudHeight
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	g.session, g.err = NewSession(cfg, runtime.Seed, g.gameType, logger)
	if g.err == nil {
		g.session.Start()
	}
}

// Resize adapts to a new terminal size without restarting the session. The
// simulation halts while the screen is too small for the arena.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Session exposes the running simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Events returns the events of the last simulated tick.
func (g *Game) Events() []Event {
	return g.events
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.session == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	over := g.session.state.Phase == PhaseGameOver

	if in.Has(core.ActionRestart) && over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || over {
		g.events = nil
		return core.StepResult{State: g.State()}
	}

	start := time.Now()
	g.events = g.session.Step(in)
	if g.observer != nil {
		g.observer.ObserveTick(time.Since(start), g.events, g.session.State())
	}
	return core.StepResult{State: g.State(), Events: len(g.events)}
}

// Render draws the HUD, the arena and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, g.err.Error())
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	mapW, _ := g.session.MapSize()
	offX := (dst.Width() - mapW) / 2
	g.renderHUD(dst, offX, mapW)
	g.session.Render(dst, offX, hudHeight)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen, offX, mapW int) {
	st := &g.session.state

	stage := fmt.Sprintf("Stage %d", st.Stage)
	dst.DrawTextColored(offX, 0, stage, core.ColorBrightYellow)

	x := offX + len(stage) + 2
	for _, slot := range st.Slots {
		text := fmt.Sprintf("%s ♥%d %s", slot.ID, slot.Lives, humanize.Comma(int64(slot.Score)))
		color := core.ColorBrightYellow
		if slot.ID == core.Player2 {
			color = core.ColorBrightGreen
		}
		dst.DrawTextColored(x, 0, text, color)
		x += len([]rune(text)) + 2
	}

	enemies := fmt.Sprintf("Enemies %d", st.RemainingToSpawn+g.session.ActiveEnemies())
	var flags string
	if st.Frozen {
		flags += "❄"
	}
	if st.Fortified {
		flags += "▣"
	}
	right := enemies
	if flags != "" {
		right = flags + " " + enemies
	}
	dst.DrawText(offX+mapW-len([]rune(right)), 0, right)
	dst.DrawHLine(offX, 1, mapW, '─')
}

func (g *Game) renderOverlay(dst *core.Screen) {
	st := &g.session.state
	switch {
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case st.Phase == PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %s  |  Press R to restart", humanize.Comma(int64(g.session.TotalScore())))
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case st.Phase == PhaseStageTransition:
		g.drawCenteredBox(dst, fmt.Sprintf("STAGE %d CLEAR", st.Stage), "Get ready...")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:    g.session.TotalScore(),
		Stage:    g.session.state.Stage,
		GameOver: g.session.state.Phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
	registry.Register("tanks_duo", func() registry.Game {
		return NewDuo()
	})
}
