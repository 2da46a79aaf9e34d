package tanks

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func advance(s *Session, ticks int) {
	for i := 0; i < ticks; i++ {
		s.sched.Advance()
	}
}

func TestDetonateDestroysActiveEnemies(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	player := place(s, PlayerOne, 360, 540, Up)
	place(s, EnemyTier1, 0, 0, Down)
	place(s, EnemyTier2, 360, 0, Down)
	place(s, EnemyTier3, 720, 0, Down)
	appearing := place(s, EnemyTier1, 360, 240, Down)
	appearing.State = Appearing

	s.consumeFood(player, &Food{ID: s.newID(), Kind: FoodDetonate, Row: 5, Col: 5})

	events := s.drain()
	destroyed := 0
	for _, ev := range events {
		if ev.Type != EventTankDestroyed {
			continue
		}
		destroyed++
		if ev.Slot != core.Player1 || ev.By != player.ID {
			t.Errorf("credit = %v by %d, want P1 by %d", ev.Slot, ev.By, player.ID)
		}
	}
	if destroyed != 3 {
		t.Fatalf("destroyed = %d, want 3", destroyed)
	}
	slot := s.state.Slots[0]
	if slot.Score != 450 {
		t.Errorf("score = %d, want 450", slot.Score)
	}
	if slot.Kills != [3]int{1, 1, 1} {
		t.Errorf("kills = %v, want one per tier", slot.Kills)
	}
	if !appearing.Alive() {
		t.Error("appearing enemy should survive detonation")
	}
}

func TestFreezeStopsEnemiesUntilExpiry(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	player := place(s, PlayerOne, 360, 540, Up)
	enemy := place(s, EnemyTier1, 360, 120, Down)
	enemy.Pending.Set(Down)

	s.consumeFood(player, &Food{Kind: FoodFreeze})
	if !enemy.Frozen || !s.state.Frozen {
		t.Fatal("enemy should be frozen")
	}
	s.moveTanks()
	if enemy.Y != 120 {
		t.Error("frozen enemy moved")
	}
	// enemies spawned during the freeze start frozen
	s.spawnEnemy()
	late := s.tanks[len(s.tanks)-1]
	if !late.Frozen {
		t.Error("enemy spawned while frozen should be frozen")
	}

	ticks := int(s.sched.Ticks(s.cfg.Timers.Freeze))
	advance(s, ticks-1)
	if !enemy.Frozen {
		t.Fatal("freeze ended early")
	}
	advance(s, 1)
	if enemy.Frozen || late.Frozen || s.state.Frozen {
		t.Error("freeze should have expired")
	}
}

func TestFreezeRestartsTimer(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	player := place(s, PlayerOne, 360, 540, Up)
	enemy := place(s, EnemyTier1, 360, 120, Down)

	ticks := int(s.sched.Ticks(s.cfg.Timers.Freeze))
	s.freeze()
	advance(s, ticks/2)
	s.consumeFood(player, &Food{Kind: FoodFreeze})
	advance(s, ticks-1)
	if !enemy.Frozen {
		t.Fatal("second freeze should restart the timer")
	}
	advance(s, 1)
	if enemy.Frozen {
		t.Error("freeze should have expired")
	}
}

func TestFortifyConvertsHomeGuard(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.grid = GenerateGrid(s.cfg.Map, s.cfg.Terrain, s.rng)
	guard := s.cfg.Terrain.BrickAreas
	broken := guard[0]
	s.grid.SetTile(broken.Row, broken.Col, Tile{Kind: Brick})

	s.fortify()
	for _, c := range guard[1:] {
		if k := s.grid.Tile(c.Row, c.Col).Kind; k != Steel {
			t.Errorf("(%d,%d) = %v, want steel", c.Row, c.Col, k)
		}
	}
	if k := s.grid.Tile(broken.Row, broken.Col).Kind; k != Brick {
		t.Errorf("empty guard tile turned to %v", k)
	}

	advance(s, int(s.sched.Ticks(s.cfg.Timers.Fortify)))
	for _, c := range guard[1:] {
		tile := s.grid.Tile(c.Row, c.Col)
		if tile.Kind != Brick || tile.Quads != fullQuads {
			t.Errorf("(%d,%d) = %+v, want full brick", c.Row, c.Col, tile)
		}
	}
	if s.state.Fortified {
		t.Error("fortify flag should be cleared")
	}
}

func TestFortifiedSteelKeepsDamage(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.grid = GenerateGrid(s.cfg.Map, s.cfg.Terrain, s.rng)
	c := s.cfg.Terrain.BrickAreas[0]

	s.fortify()
	q := QuadRef{Row: c.Row, Col: c.Col, Quad: QuadTL}
	if s.grid.DestroyQuadrant(q, 10) {
		t.Fatal("power 10 should not break fortified steel")
	}
	if !s.grid.DestroyQuadrant(q, 20) {
		t.Fatal("power 20 should break steel")
	}
	s.unfortify()
	tile := s.grid.Tile(c.Row, c.Col)
	if tile.Kind != Brick || tile.Quads[QuadTL] {
		t.Errorf("tile = %+v, want brick missing its top-left quadrant", tile)
	}
}

func TestProtectRefreshReplacesExpiry(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	tk := place(s, PlayerOne, 360, 540, Up)

	short := int(s.sched.Ticks(s.cfg.Timers.SpawnProtect))
	s.protect(tk, s.cfg.Timers.SpawnProtect)
	s.consumeFood(tk, &Food{Kind: FoodInvulnerability})

	advance(s, short)
	if !tk.Protected {
		t.Fatal("first expiry should have been replaced")
	}
	advance(s, int(s.sched.Ticks(s.cfg.Timers.Protect))-short)
	if tk.Protected {
		t.Error("protection should have expired")
	}
}

func TestExtraLife(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	tk := place(s, PlayerOne, 360, 540, Up)
	s.consumeFood(tk, &Food{Kind: FoodExtraLife})
	if s.state.Slots[0].Lives != 4 {
		t.Errorf("lives = %d, want 4", s.state.Slots[0].Lives)
	}
}

func TestFoodConsumedOnce(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	tk := place(s, PlayerOne, 360, 540, Up)
	f := &Food{Kind: FoodExtraLife}
	s.consumeFood(tk, f)
	s.consumeFood(tk, f)
	if s.state.Slots[0].Lives != 4 {
		t.Errorf("lives = %d, want 4", s.state.Slots[0].Lives)
	}
	if n := countEvents(s.drain(), EventFoodConsumed); n != 1 {
		t.Errorf("food_consumed events = %d, want 1", n)
	}
}

func TestPlayerPicksUpFoodByDriving(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	f := &Food{ID: s.newID(), Kind: FoodExtraScore, Row: 2, Col: 3}
	s.foods = append(s.foods, f)

	tk := place(s, PlayerOne, 118, 120, Right)
	tk.Pending.Set(Right)
	s.moveTank(tk)
	if !f.eaten {
		t.Fatal("food should be consumed")
	}
	if tk.X != 121 {
		t.Errorf("food must not block movement, x = %d", tk.X)
	}
}

func TestRejectedMoveDoesNotEat(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	f := &Food{ID: s.newID(), Kind: FoodExtraLife, Row: 2, Col: 3}
	s.foods = append(s.foods, f)
	place(s, EnemyTier1, 181, 120, Left)

	tk := place(s, PlayerOne, 120, 120, Right)
	tk.Pending.Set(Right)
	s.moveTank(tk)
	if f.eaten {
		t.Error("food eaten by a move that was rolled back")
	}
}

func TestEnemiesIgnoreFood(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	f := &Food{ID: s.newID(), Kind: FoodDetonate, Row: 2, Col: 3}
	s.foods = append(s.foods, f)

	e := place(s, EnemyTier1, 118, 120, Right)
	e.Pending.Set(Right)
	s.moveTank(e)
	if f.eaten {
		t.Error("enemy consumed food")
	}
}

func TestSpawnFoodRespectsCap(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.spawnFood()
	s.spawnFood()
	if got := len(s.Foods()); got != 1 {
		t.Fatalf("foods = %d, want 1", got)
	}
	f := s.Foods()[0]
	if !s.grid.Tile(f.Row, f.Col).Kind.Props().TankPassable {
		t.Error("food spawned on impassable terrain")
	}
}
