// Package config provides YAML-based configuration loading, validation and
// difficulty management for the tank arena.
package config

import "time"

// TanksConfig contains all configuration for a tank arena session.
type TanksConfig struct {
	Map        MapConfig        `yaml:"map"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Tanks      TankTable        `yaml:"tanks"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Players    PlayerConfig     `yaml:"players"`
	Timers     TimerConfig      `yaml:"timers"`
	Food       FoodConfig       `yaml:"food"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MapConfig defines the tile grid. Cube is the tile edge in pixels and must
// be divisible by 4 so half and quarter tiles are whole pixels.
type MapConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
	Cube    int `yaml:"cube"`
}

// Width returns the map width in pixels.
func (m MapConfig) Width() int { return m.Columns * m.Cube }

// Height returns the map height in pixels.
func (m MapConfig) Height() int { return m.Rows * m.Cube }

// TileCoord addresses a map tile by row and column.
type TileCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// TerrainWeights are the sampling weights for a generated tile.
type TerrainWeights struct {
	Blank float64 `yaml:"blank"`
	Brick float64 `yaml:"brick"`
	Steel float64 `yaml:"steel"`
	Grass float64 `yaml:"grass"`
	Water float64 `yaml:"water"`
}

// Slice returns the weights in terrain kind order.
func (w TerrainWeights) Slice() []float64 {
	return []float64{w.Blank, w.Brick, w.Steel, w.Grass, w.Water}
}

// TerrainConfig controls map generation. Override areas are applied after
// random generation in the order blank, steel, brick; Home is the base tile
// and BrickAreas double as its guard ring.
type TerrainConfig struct {
	Weights    TerrainWeights `yaml:"weights"`
	BlankAreas []TileCoord    `yaml:"blank_areas"`
	SteelAreas []TileCoord    `yaml:"steel_areas"`
	BrickAreas []TileCoord    `yaml:"brick_areas"`
	Home       TileCoord      `yaml:"home"`
}

// TankStats are the per-kind tank parameters.
type TankStats struct {
	Lives           int `yaml:"lives"`
	HitPoints       int `yaml:"hit_points"`
	Power           int `yaml:"power"`
	AmmoCapacity    int `yaml:"ammo_capacity"`
	Speed           int `yaml:"speed"`
	ProjectileSpeed int `yaml:"projectile_speed"`
	Score           int `yaml:"score"`
}

// TankTable holds the stats of every tank kind.
type TankTable struct {
	Player TankStats `yaml:"player"`
	Enemy1 TankStats `yaml:"enemy1"`
	Enemy2 TankStats `yaml:"enemy2"`
	Enemy3 TankStats `yaml:"enemy3"`
}

// EnemyConfig defines enemy spawning and AI policy.
type EnemyConfig struct {
	PerStage     int       `yaml:"per_stage"`
	MaxActive    int       `yaml:"max_active"`
	Weights      []float64 `yaml:"weights"`       // tier 1..3
	SpawnColumns []int     `yaml:"spawn_columns"` // on the top row
	ChangeWeight float64   `yaml:"change_weight"` // probability per decision tick
	ShootWeight  float64   `yaml:"shoot_weight"`  // probability per decision tick
}

// PlayerConfig defines player lives and spawn points.
type PlayerConfig struct {
	Lives        int   `yaml:"lives"`
	SpawnColumns []int `yaml:"spawn_columns"` // P1, P2 on the bottom row
}

// TimerConfig holds every interval and duration used by the simulation.
type TimerConfig struct {
	Tick            time.Duration `yaml:"tick"`
	SpawnInterval   time.Duration `yaml:"spawn_interval"`
	Decision        time.Duration `yaml:"decision"`
	Freeze          time.Duration `yaml:"freeze"`
	Fortify         time.Duration `yaml:"fortify"`
	Protect         time.Duration `yaml:"protect"`
	SpawnProtect    time.Duration `yaml:"spawn_protect"`
	SpawnAnimation  time.Duration `yaml:"spawn_animation"`
	FoodInterval    time.Duration `yaml:"food_interval"`
	StageTransition time.Duration `yaml:"stage_transition"`
	WaterFrame      time.Duration `yaml:"water_frame"`
}

// FoodWeights are the sampling weights for spawned power-ups.
type FoodWeights struct {
	Detonate        float64 `yaml:"detonate"`
	Freeze          float64 `yaml:"freeze"`
	Fortify         float64 `yaml:"fortify"`
	ExtraGun        float64 `yaml:"extra_gun"`
	Invulnerability float64 `yaml:"invulnerability"`
	ExtraLife       float64 `yaml:"extra_life"`
	ExtraScore      float64 `yaml:"extra_score"`
}

// Slice returns the weights in food kind order.
func (w FoodWeights) Slice() []float64 {
	return []float64{w.Detonate, w.Freeze, w.Fortify, w.ExtraGun, w.Invulnerability, w.ExtraLife, w.ExtraScore}
}

// FoodConfig controls power-up spawning.
type FoodConfig struct {
	MaxActive int         `yaml:"max_active"`
	Weights   FoodWeights `yaml:"weights"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stage" or "none"
	MaxAt int    `yaml:"max_at"` // stage at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	ShootBoost     float64 `yaml:"shoot_boost"`      // added to enemies.shoot_weight
	ChangeBoost    float64 `yaml:"change_boost"`     // added to enemies.change_weight
	SpawnReduction float64 `yaml:"spawn_reduction"`  // fraction cut from spawn_interval
	ExtraMaxActive int     `yaml:"extra_max_active"` // added to enemies.max_active
	TierShift      float64 `yaml:"tier_shift"`       // fraction of tier 1 weight moved to tier 3
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset converts a flag value to a preset. Unknown values map to normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}
