package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// addTank places a new tank in its appearing state and schedules its
// activation after the spawn animation.
func (s *Session) addTank(kind TankKind, x, y int, dir Direction) *Tank {
	t := newTank(s.newID(), kind, statsFor(s.cfg.Tanks, kind))
	t.X, t.Y, t.Dir = x, y, dir
	s.tanks = append(s.tanks, t)

	s.emit(Event{Type: EventTankSpawned, ID: t.ID, X: x, Y: y, Dir: dir, Tank: kind})
	s.sched.After(s.cfg.Timers.SpawnAnimation, t.ID, func() {
		s.activate(t)
	})
	return t
}

func (s *Session) activate(t *Tank) {
	if t.State != Appearing {
		return
	}
	t.State = Active
	s.emit(Event{Type: EventTankActivated, ID: t.ID, X: t.X, Y: t.Y, Dir: t.Dir, Tank: t.Kind, Slot: t.Slot})

	if t.IsPlayer() {
		s.protect(t, s.cfg.Timers.SpawnProtect)
		return
	}
	s.sched.Every(s.cfg.Timers.Decision, t.ID, func() {
		s.enemyDecide(t)
	})
}

// spawnFree reports whether no tank occupies the tile-sized box at (x, y).
func (s *Session) spawnFree(x, y int) bool {
	cube := s.cfg.Map.Cube
	r := core.NewRect(x, y, cube, cube)
	for _, t := range s.tanks {
		if t.Alive() && t.Rect(cube).Intersects(r) {
			return false
		}
	}
	return true
}

// spawnEnemy places one enemy at the next free spawn point. It reports
// false when no enemy could be placed.
func (s *Session) spawnEnemy() bool {
	if s.state.Phase != PhaseRunning {
		return false
	}
	if s.state.RemainingToSpawn <= 0 || s.ActiveEnemies() >= s.enemies.MaxActive {
		return false
	}

	cube := s.cfg.Map.Cube
	cols := s.enemies.SpawnColumns
	for i := range cols {
		idx := (s.nextSpawn + i) % len(cols)
		x := cols[idx] * cube
		if !s.spawnFree(x, 0) {
			continue
		}
		s.nextSpawn = idx + 1

		kind := enemyKindForTier(pickWeighted(s.rng, s.enemies.Weights))
		t := s.addTank(kind, x, 0, Down)
		t.Pending.Set(Down)
		t.Frozen = s.state.Frozen
		s.state.RemainingToSpawn--
		return true
	}
	return false
}

// fillEnemies spawns enemies until a limit is hit.
func (s *Session) fillEnemies() {
	for s.spawnEnemy() {
	}
}

// spawnPlayer puts the slot's tank on its spawn column in the bottom row, or
// marks the slot as waiting when the point is occupied.
func (s *Session) spawnPlayer(slot *SlotState) {
	cube := s.cfg.Map.Cube
	x := s.cfg.Players.SpawnColumns[int(slot.ID)-1] * cube
	y := (s.cfg.Map.Rows - 1) * cube
	if !s.spawnFree(x, y) {
		slot.waiting = true
		return
	}

	kind := PlayerOne
	if slot.ID == core.Player2 {
		kind = PlayerTwo
	}
	t := s.addTank(kind, x, y, Up)
	t.Slot = slot.ID
	t.Pending = slot.held
	slot.TankID = t.ID
	slot.waiting = false
}

func (s *Session) respawnWaiting() {
	for i := range s.state.Slots {
		slot := &s.state.Slots[i]
		if slot.waiting && slot.Lives > 0 && slot.TankID == 0 {
			s.spawnPlayer(slot)
		}
	}
}

// spawnFood drops a power-up on a random tank-passable tile that no tank or
// food occupies, unless the food cap is reached.
func (s *Session) spawnFood() {
	if s.state.Phase != PhaseRunning {
		return
	}
	live := 0
	for _, f := range s.foods {
		if !f.eaten {
			live++
		}
	}
	if live >= s.cfg.Food.MaxActive {
		return
	}

	cube := s.cfg.Map.Cube
	var candidates []tileCell
	for row := 0; row < s.grid.Rows(); row++ {
		for col := 0; col < s.grid.Columns(); col++ {
			if !s.grid.Tile(row, col).Kind.Props().TankPassable {
				continue
			}
			r := s.grid.TileRect(row, col)
			if s.occupied(r) {
				continue
			}
			candidates = append(candidates, tileCell{row, col})
		}
	}
	if len(candidates) == 0 {
		return
	}

	at := candidates[s.rng.Intn(len(candidates))]
	f := &Food{
		ID:   s.newID(),
		Kind: FoodKind(pickWeighted(s.rng, s.cfg.Food.Weights.Slice())),
		Row:  at.row,
		Col:  at.col,
	}
	s.foods = append(s.foods, f)
	s.emit(Event{Type: EventFoodSpawned, ID: f.ID, X: at.col * cube, Y: at.row * cube, Food: f.Kind})
}

type tileCell struct{ row, col int }

func (s *Session) occupied(r core.Rect) bool {
	cube := s.cfg.Map.Cube
	for _, t := range s.tanks {
		if t.Alive() && t.Rect(cube).Intersects(r) {
			return true
		}
	}
	for _, f := range s.foods {
		if !f.eaten && f.Rect(cube).Intersects(r) {
			return true
		}
	}
	return false
}
