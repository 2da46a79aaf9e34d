package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// EntityID identifies a tank, projectile or food item for its whole life.
// IDs are never reused within a session.
type EntityID uint32

// EntityKind tags the participants of a collision.
type EntityKind uint8

const (
	KindTank EntityKind = iota
	KindProjectile
	KindTerrain
	KindFood
	kindCount
)

func (k EntityKind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindProjectile:
		return "projectile"
	case KindTerrain:
		return "terrain"
	case KindFood:
		return "food"
	default:
		return "?"
	}
}

// TankKind is the model of a tank.
type TankKind uint8

const (
	PlayerOne TankKind = iota
	PlayerTwo
	EnemyTier1
	EnemyTier2
	EnemyTier3
)

func (k TankKind) String() string {
	switch k {
	case PlayerOne:
		return "player1"
	case PlayerTwo:
		return "player2"
	case EnemyTier1:
		return "enemy1"
	case EnemyTier2:
		return "enemy2"
	case EnemyTier3:
		return "enemy3"
	default:
		return "?"
	}
}

// IsPlayer reports whether the kind is piloted by a player.
func (k TankKind) IsPlayer() bool {
	return k == PlayerOne || k == PlayerTwo
}

// Tier returns the 0-based enemy tier, or -1 for players.
func (k TankKind) Tier() int {
	if k.IsPlayer() {
		return -1
	}
	return int(k - EnemyTier1)
}

func enemyKindForTier(tier int) TankKind {
	return EnemyTier1 + TankKind(tier)
}

func statsFor(table config.TankTable, k TankKind) config.TankStats {
	switch k {
	case EnemyTier1:
		return table.Enemy1
	case EnemyTier2:
		return table.Enemy2
	case EnemyTier3:
		return table.Enemy3
	default:
		return table.Player
	}
}

// Lifecycle is the life state of a tank.
type Lifecycle uint8

const (
	Appearing Lifecycle = iota // spawn animation, immune and immobile
	Active
	Destroyed
)

func (l Lifecycle) String() string {
	switch l {
	case Appearing:
		return "appearing"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	default:
		return "?"
	}
}

// Tank is a player or enemy tank. Position is the top-left pixel of its
// cube-sized box.
type Tank struct {
	ID    EntityID
	Kind  TankKind
	Slot  core.PlayerID // zero for enemies
	X, Y  int
	Dir   Direction
	State Lifecycle

	// Pending holds the held directions; enemies keep a single entry.
	Pending DirectionStack

	HitPoints       int
	Power           int
	Speed           int
	ProjectileSpeed int
	AmmoCapacity    int
	AmmoAvailable   int
	Score           int // awarded to the player who destroys it

	Protected bool
	Frozen    bool

	// blocked is set when the last move attempt was rejected by a tank or
	// clamped at the map edge. The next decision tick must change heading.
	blocked    bool
	blockedDir Direction

	protectJob *Job
}

func newTank(id EntityID, kind TankKind, stats config.TankStats) *Tank {
	return &Tank{
		ID:              id,
		Kind:            kind,
		State:           Appearing,
		Pending:         NewDirectionStack(),
		HitPoints:       stats.HitPoints,
		Power:           stats.Power,
		Speed:           stats.Speed,
		ProjectileSpeed: stats.ProjectileSpeed,
		AmmoCapacity:    stats.AmmoCapacity,
		AmmoAvailable:   stats.AmmoCapacity,
		Score:           stats.Score,
	}
}

// IsPlayer reports whether the tank belongs to a player.
func (t *Tank) IsPlayer() bool {
	return t.Kind.IsPlayer()
}

// Alive reports whether the tank is still in the world.
func (t *Tank) Alive() bool {
	return t.State != Destroyed
}

// Rect returns the bounding box of the tank.
func (t *Tank) Rect(cube int) core.Rect {
	return core.NewRect(t.X, t.Y, cube, cube)
}

// Projectile dimensions in pixels, measured along and across the heading.
const (
	projectileLength = 8
	projectileWidth  = 5
)

// Projectile is a shot in flight. It refers to its owner by ID only and
// copies what it needs from the owner at fire time.
type Projectile struct {
	ID            EntityID
	Owner         EntityID
	OwnerSlot     core.PlayerID
	OwnerIsPlayer bool
	Dir           Direction
	Speed         int
	Power         int
	X, Y          int
	alive         bool
}

// Alive reports whether the projectile is still in flight.
func (p *Projectile) Alive() bool {
	return p.alive
}

// Rect returns the bounding box of the projectile.
func (p *Projectile) Rect() core.Rect {
	if p.Dir.Horizontal() {
		return core.NewRect(p.X, p.Y, projectileLength, projectileWidth)
	}
	return core.NewRect(p.X, p.Y, projectileWidth, projectileLength)
}

// muzzle returns the spawn position of a projectile fired by a tank: centred
// on the leading edge, inside the tank box.
func muzzle(x, y, cube int, d Direction) (int, int) {
	mid := cube/2 - projectileWidth/2
	switch d {
	case Up:
		return x + mid, y
	case Down:
		return x + mid, y + cube - projectileLength
	case Left:
		return x, y + mid
	default:
		return x + cube - projectileLength, y + mid
	}
}

// FoodKind is the effect of a power-up.
type FoodKind uint8

const (
	FoodDetonate FoodKind = iota
	FoodFreeze
	FoodFortify
	FoodExtraGun
	FoodInvulnerability
	FoodExtraLife
	FoodExtraScore
)

func (k FoodKind) String() string {
	switch k {
	case FoodDetonate:
		return "detonate"
	case FoodFreeze:
		return "freeze"
	case FoodFortify:
		return "fortify"
	case FoodExtraGun:
		return "extra_gun"
	case FoodInvulnerability:
		return "invulnerability"
	case FoodExtraLife:
		return "extra_life"
	case FoodExtraScore:
		return "extra_score"
	default:
		return "?"
	}
}

// Food is a power-up lying on a tile.
type Food struct {
	ID       EntityID
	Kind     FoodKind
	Row, Col int
	eaten    bool
}

// Rect returns the bounding box of the food item, which is its whole tile.
func (f *Food) Rect(cube int) core.Rect {
	return core.NewRect(f.Col*cube, f.Row*cube, cube, cube)
}
