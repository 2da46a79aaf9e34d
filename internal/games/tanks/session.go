package tanks

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// GameType is the number of player slots.
type GameType int

const (
	OnePlayer  GameType = 1
	TwoPlayers GameType = 2
)

func (g GameType) String() string {
	if g == TwoPlayers {
		return "two_players"
	}
	return "one_player"
}

// Phase is the top-level state of a session.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseStageTransition
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseStageTransition:
		return "stage_transition"
	case PhaseGameOver:
		return "game_over"
	default:
		return "?"
	}
}

// SlotState is the bookkeeping of one player slot.
type SlotState struct {
	ID     core.PlayerID
	Lives  int    // remaining lives, the live tank included
	Score  int    // sum of destroyed enemy scores
	Kills  [3]int // destroyed enemies per tier
	TankID EntityID

	held    DirectionStack
	waiting bool // respawn requested, spawn point was busy
}

// SessionState is the session-wide bookkeeping. A copy is handed out by
// Session.State.
type SessionState struct {
	Phase            Phase
	Stage            int
	Tick             uint64
	RemainingToSpawn int
	GameType         GameType
	Slots            []SlotState
	Frozen           bool // freeze effect active
	Fortified        bool // home guard turned to steel
}

// Session owns every tank, projectile, food item and the terrain of the
// current stage, and advances them one tick at a time. It is not safe for
// concurrent use.
type Session struct {
	cfg        config.TanksConfig
	difficulty *config.DifficultyManager
	enemies    config.EnemyConfig // scaled for the current stage
	rng        *rand.Rand
	logger     *log.Logger
	sched      *Scheduler

	state       SessionState
	grid        *Grid
	tanks       []*Tank
	projectiles []*Projectile
	foods       []*Food
	fortified   []config.TileCoord

	nextID    EntityID
	nextSpawn int
	events    []Event
	contacts  []contact
}

// NewSession validates the configuration and builds a session that has not
// started yet. A nil logger discards output.
func NewSession(cfg config.TanksConfig, seed int64, gameType GameType, logger *log.Logger) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if gameType != OnePlayer && gameType != TwoPlayers {
		return nil, fmt.Errorf("tanks: unsupported game type %d", gameType)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
		logger:     logger,
		sched:      NewScheduler(cfg.Timers.Tick),
		nextID:     firstEntityID,
	}
	s.state.GameType = gameType
	for i := 0; i < int(gameType); i++ {
		s.state.Slots = append(s.state.Slots, SlotState{
			ID:    core.PlayerID(i + 1),
			Lives: cfg.Players.Lives,
			held:  NewDirectionStack(),
		})
	}
	s.grid = NewGrid(cfg.Map)
	return s, nil
}

// Start begins stage one. Calling it on a started session is a no-op.
func (s *Session) Start() {
	if s.state.Phase != PhaseNotStarted {
		return
	}
	s.logger.Info("session started", "players", int(s.state.GameType))
	s.startStage(1)
}

// Step advances the simulation by one tick and returns the events it
// produced. A session that has not started is started first.
func (s *Session) Step(in core.MultiInputFrame) []Event {
	if s.state.Phase == PhaseNotStarted {
		s.Start()
	}
	if s.state.Phase == PhaseGameOver {
		return s.drain()
	}

	s.state.Tick++
	if s.state.Phase == PhaseRunning {
		s.applyInput(in)
		s.respawnWaiting()
		s.moveTanks()
		s.moveProjectiles()
	}
	s.sched.Advance()
	s.sweep()
	s.checkTerminal()
	return s.drain()
}

// State returns a copy of the session bookkeeping.
func (s *Session) State() SessionState {
	st := s.state
	st.Slots = append([]SlotState(nil), s.state.Slots...)
	return st
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.TanksConfig {
	return s.cfg
}

// Grid returns the terrain of the current stage.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Tanks returns copies of every tank in the world, in spawn order.
func (s *Session) Tanks() []Tank {
	out := make([]Tank, 0, len(s.tanks))
	for _, t := range s.tanks {
		if t.Alive() {
			out = append(out, *t)
		}
	}
	return out
}

// Projectiles returns copies of every projectile in flight.
func (s *Session) Projectiles() []Projectile {
	out := make([]Projectile, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		if p.alive {
			out = append(out, *p)
		}
	}
	return out
}

// Foods returns copies of every food item on the map.
func (s *Session) Foods() []Food {
	out := make([]Food, 0, len(s.foods))
	for _, f := range s.foods {
		if !f.eaten {
			out = append(out, *f)
		}
	}
	return out
}

// ActiveEnemies returns the number of enemies in the world, appearing ones
// included.
func (s *Session) ActiveEnemies() int {
	n := 0
	for _, t := range s.tanks {
		if !t.IsPlayer() && t.Alive() {
			n++
		}
	}
	return n
}

func (s *Session) drain() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Session) newID() EntityID {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Session) tank(id EntityID) *Tank {
	if id == 0 {
		return nil
	}
	for _, t := range s.tanks {
		if t.ID == id && t.Alive() {
			return t
		}
	}
	return nil
}

func (s *Session) slot(id core.PlayerID) *SlotState {
	for i := range s.state.Slots {
		if s.state.Slots[i].ID == id {
			return &s.state.Slots[i]
		}
	}
	return nil
}

func (s *Session) applyInput(in core.MultiInputFrame) {
	for i := range s.state.Slots {
		slot := &s.state.Slots[i]
		shoot := false
		for _, ev := range in.Player(slot.ID).Events() {
			if d, ok := directionFor(ev.Action); ok {
				if ev.Released {
					slot.held.Remove(d)
				} else {
					slot.held.Push(d)
				}
				continue
			}
			if ev.Action == core.ActionShoot && !ev.Released {
				shoot = true
			}
		}

		t := s.tank(slot.TankID)
		if t == nil {
			continue
		}
		t.Pending = slot.held
		if shoot {
			s.fire(t)
		}
	}
}

func (s *Session) moveTanks() {
	for _, t := range s.tanks {
		if t.State != Active || t.Frozen {
			continue
		}
		s.moveTank(t)
	}
}

func (s *Session) moveProjectiles() {
	// projectiles fired by collisions during this pass wait for the next tick
	n := len(s.projectiles)
	for i := 0; i < n; i++ {
		if p := s.projectiles[i]; p.alive {
			s.stepProjectile(p)
		}
	}
}

// fire launches a projectile from the tank's muzzle. Without ammo it does
// nothing.
func (s *Session) fire(t *Tank) bool {
	if t.State != Active || t.AmmoAvailable <= 0 {
		return false
	}
	t.AmmoAvailable--

	x, y := muzzle(t.X, t.Y, s.cfg.Map.Cube, t.Dir)
	p := &Projectile{
		ID:            s.newID(),
		Owner:         t.ID,
		OwnerSlot:     t.Slot,
		OwnerIsPlayer: t.IsPlayer(),
		Dir:           t.Dir,
		Speed:         t.ProjectileSpeed,
		Power:         t.Power,
		X:             x,
		Y:             y,
		alive:         true,
	}
	s.projectiles = append(s.projectiles, p)
	s.emit(Event{Type: EventProjectileFired, ID: p.ID, X: x, Y: y, Dir: p.Dir, By: t.ID, Slot: t.Slot})
	return true
}

// destroyProjectile removes a projectile and returns its ammo unit to the
// owner if the owner is still alive. Destroying twice is a no-op.
func (s *Session) destroyProjectile(p *Projectile) {
	if !p.alive {
		return
	}
	p.alive = false
	s.emit(Event{Type: EventProjectileDestroyed, ID: p.ID, X: p.X, Y: p.Y, By: p.Owner})

	if owner := s.tank(p.Owner); owner != nil && owner.AmmoAvailable < owner.AmmoCapacity {
		owner.AmmoAvailable++
	}
}

// destroyTank removes a tank, settles lives and kill credit, and checks for
// the end of the stage or game. by is the destroying entity, credit the
// player slot that earns the kill (zero for none). Destroying twice is a
// no-op.
func (s *Session) destroyTank(t *Tank, by EntityID, credit core.PlayerID) bool {
	if t.State == Destroyed {
		return false
	}
	t.State = Destroyed
	t.protectJob.Cancel()
	s.sched.CancelOwner(t.ID)

	cx, cy := t.Rect(s.cfg.Map.Cube).Center()
	s.emit(Event{Type: EventTankDestroyed, ID: t.ID, X: t.X, Y: t.Y, Tank: t.Kind, By: by, Slot: credit})
	s.emit(Event{Type: EventExplosion, ID: t.ID, X: cx, Y: cy})

	if t.IsPlayer() {
		if slot := s.slot(t.Slot); slot != nil {
			slot.TankID = 0
			if slot.Lives > 0 {
				slot.Lives--
			}
			slot.waiting = slot.Lives > 0
			s.logger.Debug("player destroyed", "slot", slot.ID, "lives", slot.Lives)
		}
	} else if slot := s.slot(credit); slot != nil {
		slot.Score += t.Score
		slot.Kills[t.Kind.Tier()]++
	}

	s.checkTerminal()
	return true
}

// checkTerminal moves a running session to game over or stage transition.
// Game over wins when both hold at once, even if the stage was cleared
// earlier in the same tick.
func (s *Session) checkTerminal() {
	switch s.state.Phase {
	case PhaseRunning, PhaseStageTransition:
	default:
		return
	}
	if s.playersOut() {
		s.gameOver()
		return
	}
	if s.state.Phase == PhaseRunning && s.state.RemainingToSpawn == 0 && s.ActiveEnemies() == 0 {
		s.clearStage()
	}
}

func (s *Session) playersOut() bool {
	for _, slot := range s.state.Slots {
		if slot.Lives > 0 || slot.TankID != 0 {
			return false
		}
	}
	return true
}

func (s *Session) gameOver() {
	s.state.Phase = PhaseGameOver
	s.sched.CancelOwner(ownerStage)
	s.sched.CancelOwner(ownerSession) // a pending stage transition
	s.emit(Event{Type: EventGameOver, Stage: s.state.Stage})
	s.logger.Info("game over", "stage", s.state.Stage, "score", s.TotalScore())
}

func (s *Session) clearStage() {
	s.state.Phase = PhaseStageTransition
	s.sched.CancelOwner(ownerStage)
	s.emit(Event{Type: EventStageCleared, Stage: s.state.Stage})
	s.logger.Info("stage cleared", "stage", s.state.Stage, "score", s.TotalScore())

	next := s.state.Stage + 1
	s.sched.After(s.cfg.Timers.StageTransition, ownerSession, func() {
		s.startStage(next)
	})
}

// startStage regenerates the terrain, clears every entity and respawns the
// players that still have lives.
func (s *Session) startStage(stage int) {
	for _, t := range s.tanks {
		t.protectJob.Cancel()
		s.sched.CancelOwner(t.ID)
	}
	s.sched.CancelOwner(ownerStage)
	s.sched.CancelOwner(ownerFreeze)
	s.sched.CancelOwner(ownerFortify)

	s.state.Stage = stage
	s.state.Phase = PhaseRunning
	s.state.Frozen = false
	s.state.Fortified = false
	s.fortified = nil
	s.tanks = nil
	s.projectiles = nil
	s.foods = nil
	s.nextSpawn = 0

	s.enemies = s.difficulty.Enemies(s.cfg.Enemies, stage)
	s.state.RemainingToSpawn = s.enemies.PerStage
	s.grid = GenerateGrid(s.cfg.Map, s.cfg.Terrain, s.rng)

	s.emit(Event{Type: EventStageStarted, Stage: stage})
	s.logger.Info("stage started", "stage", stage, "enemies", s.enemies.PerStage)

	for i := range s.state.Slots {
		slot := &s.state.Slots[i]
		slot.TankID = 0
		slot.waiting = false
		if slot.Lives > 0 {
			s.spawnPlayer(slot)
		}
	}
	s.fillEnemies()

	s.sched.Every(s.difficulty.SpawnInterval(s.cfg.Timers.SpawnInterval, stage), ownerStage, func() {
		s.spawnEnemy()
	})
	s.sched.Every(s.cfg.Timers.FoodInterval, ownerStage, s.spawnFood)
	s.sched.Every(s.cfg.Timers.WaterFrame, ownerStage, func() {
		s.grid.AdvanceWater()
	})

	s.checkTerminal()
}

// sweep drops destroyed entities from the world lists.
func (s *Session) sweep() {
	tanks := s.tanks[:0]
	for _, t := range s.tanks {
		if t.Alive() {
			tanks = append(tanks, t)
		}
	}
	clear(s.tanks[len(tanks):])
	s.tanks = tanks

	projectiles := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.alive {
			projectiles = append(projectiles, p)
		}
	}
	clear(s.projectiles[len(projectiles):])
	s.projectiles = projectiles

	foods := s.foods[:0]
	for _, f := range s.foods {
		if !f.eaten {
			foods = append(foods, f)
		}
	}
	clear(s.foods[len(foods):])
	s.foods = foods
}

// TotalScore returns the combined score of every slot.
func (s *Session) TotalScore() int {
	total := 0
	for _, slot := range s.state.Slots {
		total += slot.Score
	}
	return total
}

// Summary is the outcome of a session so far.
type Summary struct {
	Stage  int
	Ticks  uint64
	Scores [2]int // indexed by slot, P2 zero in one-player games
	Kills  [3]int // per enemy tier, all slots
	Over   bool
}

// Summary reports the stage reached, scores and kills.
func (s *Session) Summary() Summary {
	sum := Summary{
		Stage: s.state.Stage,
		Ticks: s.state.Tick,
		Over:  s.state.Phase == PhaseGameOver,
	}
	for i, slot := range s.state.Slots {
		if i < len(sum.Scores) {
			sum.Scores[i] = slot.Score
		}
		for tier, n := range slot.Kills {
			sum.Kills[tier] += n
		}
	}
	return sum
}
