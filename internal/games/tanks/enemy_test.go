package tanks

import "testing"

func TestChooseDirectionAvoidsEdges(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	e := place(s, EnemyTier1, 0, 0, Down)

	for i := 0; i < 200; i++ {
		s.chooseDirection(e, false)
		d, _ := e.Pending.Top()
		if d == Up || d == Left {
			t.Fatalf("picked %v at the top-left corner", d)
		}
	}
}

func TestBlockedEnemyMustTurn(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.enemies.ChangeWeight = 0
	s.enemies.ShootWeight = 0
	e := place(s, EnemyTier1, 300, 300, Down)

	for i := 0; i < 200; i++ {
		e.Pending.Set(Down)
		e.blocked = true
		e.blockedDir = Down
		s.enemyDecide(e)
		d, _ := e.Pending.Top()
		if d == Down {
			t.Fatal("blocked enemy kept its blocked heading")
		}
		if e.blocked {
			t.Fatal("decision should clear the blocked flag")
		}
	}
}

func TestEnemyKeepsHeadingWithoutRolls(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.enemies.ChangeWeight = 0
	s.enemies.ShootWeight = 0
	e := place(s, EnemyTier1, 300, 300, Down)
	e.Pending.Set(Down)

	for i := 0; i < 50; i++ {
		s.enemyDecide(e)
	}
	if d, _ := e.Pending.Top(); d != Down {
		t.Errorf("heading = %v, want down", d)
	}
	if len(s.projectiles) != 0 {
		t.Error("enemy fired with zero shoot weight")
	}
}

func TestEnemyAlwaysShootsAtWeightOne(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.enemies.ShootWeight = 1
	e := place(s, EnemyTier1, 300, 300, Down)

	s.enemyDecide(e)
	if len(s.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(s.projectiles))
	}
}

func TestTerrainRedirectsEnemyImmediately(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.grid.SetTile(6, 5, solid(Steel))
	e := place(s, EnemyTier1, 300, 298, Down)
	e.Pending.Set(Down)

	s.moveTank(e)
	if e.Y != 298 {
		t.Fatalf("y = %d, want 298", e.Y)
	}
	if d, _ := e.Pending.Top(); d == Down {
		t.Error("enemy should pick a new heading after hitting terrain")
	}
}

func TestFrozenEnemySkipsDecision(t *testing.T) {
	s := newTestSession(t, OnePlayer)
	s.enemies.ChangeWeight = 1
	s.enemies.ShootWeight = 1
	e := place(s, EnemyTier1, 300, 300, Down)
	e.Frozen = true
	e.Pending.Set(Down)

	s.enemyDecide(e)
	if d, _ := e.Pending.Top(); d != Down || len(s.projectiles) != 0 {
		t.Error("frozen enemy acted")
	}
}
