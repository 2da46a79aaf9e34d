package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// sessionGame is implemented by games backed by a tank session.
type sessionGame interface {
	Session() *tanks.Session
}

// resizable games follow the terminal size without a restart.
type resizable interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *KeyMapper
	holds     *HoldTracker
	input     core.MultiInputFrame
	gameState core.GameState
	started   time.Time
	quitting  bool
	back      bool
	saved     bool // result of the current game has been stored
	embedded  bool // runs inside SessionModel, back must not quit the program
	gen       uint64
	now       func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) *Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(game.ID() == "tanks_duo"),
		holds:  NewHoldTracker(DefaultHoldTimeout),
		input:  core.NewMultiInputFrame(),
		now:    time.Now,
	}
}

// SetLogger sets the logger used to report storage failures.
func (m *Model) SetLogger(l *log.Logger) {
	m.logger = l
}

// Init starts the game and the tick loop.
func (m *Model) Init() tea.Cmd {
	m.reset()
	m.gen = nextTickGen()
	return tickCmd(m.config.TickRate, m.gen)
}

func (m *Model) reset() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = m.now()
	m.saved = false
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizable); ok {
			r.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	player, action := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.finish(storage.EndQuit)
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case action.IsDirection():
		m.holds.Press(&m.input, player, action, m.now())
	case action != core.ActionNone:
		m.input.Press(player, action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.holds.Expire(&m.input, m.now())

	if m.gameState.GameOver && m.input.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.holds.ReleaseAll(&m.input)
		m.input.Clear()
		m.reset()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.input)
	m.gameState = result.State
	if m.gameState.GameOver {
		m.finish(storage.EndGameOver)
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// finish stores the score and the run once per game.
func (m *Model) finish(reason string) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	state := m.game.State()
	if state.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), state.Score); err != nil {
			m.logError("cannot save score", err)
		}
	}

	sg, ok := m.game.(sessionGame)
	if !ok || sg.Session() == nil {
		return
	}
	run := RunFromSummary(m.game.ID(), m.config.Seed, reason, m.now().Sub(m.started), sg.Session().Summary())
	if run.Ticks == 0 {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logError("cannot save run", err)
	}
}

func (m *Model) logError(msg string, err error) {
	if m.logger != nil {
		m.logger.Error(msg, "game", m.game.ID(), "err", err)
	}
}

// RunFromSummary builds the stored record of a finished session.
func RunFromSummary(gameID string, seed int64, reason string, d time.Duration, sum tanks.Summary) storage.Run {
	return storage.Run{
		GameID:    gameID,
		Seed:      seed,
		Stage:     sum.Stage,
		Ticks:     sum.Ticks,
		Scores:    sum.Scores,
		Kills:     sum.Kills,
		EndReason: reason,
		Duration:  d,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tanks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// WentBack reports whether the player left for the menu.
func (m *Model) WentBack() bool {
	return m.back
}

// Run starts the Bubble Tea program for the given game. It returns true if
// the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...tea.ProgramOption) (bool, error) {
	model := NewModel(game, store, cfg)
	model.SetLogger(logger)

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)

	if _, err := p.Run(); err != nil {
		return false, err
	}
	return model.WentBack(), nil
}
