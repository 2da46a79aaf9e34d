package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksYAML returns the embedded default configuration document.
func DefaultTanksYAML() []byte {
	return defaultTanksYAML
}

// DefaultTanksConfig returns the built-in tank arena configuration.
// It mirrors defaults/tanks.yaml and is used when the embedded file cannot
// be parsed.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Map: MapConfig{
			Columns: 13,
			Rows:    10,
			Cube:    60,
		},
		Terrain: TerrainConfig{
			Weights: TerrainWeights{
				Blank: 0.6,
				Brick: 0.2,
				Steel: 0.1,
				Grass: 0.05,
				Water: 0.05,
			},
			BlankAreas: []TileCoord{
				{Row: 0, Col: 0}, {Row: 0, Col: 6}, {Row: 0, Col: 12},
				{Row: 9, Col: 4}, {Row: 9, Col: 8}, {Row: 9, Col: 6},
			},
			SteelAreas: []TileCoord{{Row: 5, Col: 6}},
			BrickAreas: []TileCoord{
				{Row: 9, Col: 5}, {Row: 9, Col: 7},
				{Row: 8, Col: 5}, {Row: 8, Col: 6}, {Row: 8, Col: 7},
			},
			Home: TileCoord{Row: 9, Col: 6},
		},
		Tanks: TankTable{
			Player: TankStats{Lives: 3, HitPoints: 20, Power: 10, AmmoCapacity: 3, Speed: 3, ProjectileSpeed: 10, Score: 0},
			Enemy1: TankStats{Lives: 1, HitPoints: 10, Power: 10, AmmoCapacity: 3, Speed: 3, ProjectileSpeed: 10, Score: 100},
			Enemy2: TankStats{Lives: 1, HitPoints: 10, Power: 10, AmmoCapacity: 3, Speed: 4, ProjectileSpeed: 15, Score: 150},
			Enemy3: TankStats{Lives: 1, HitPoints: 30, Power: 20, AmmoCapacity: 3, Speed: 2, ProjectileSpeed: 7, Score: 200},
		},
		Enemies: EnemyConfig{
			PerStage:     20,
			MaxActive:    4,
			Weights:      []float64{0.6, 0.3, 0.1},
			SpawnColumns: []int{0, 6, 12},
			ChangeWeight: 0.4,
			ShootWeight:  0.1,
		},
		Players: PlayerConfig{
			Lives:        3,
			SpawnColumns: []int{4, 8},
		},
		Timers: TimerConfig{
			Tick:            20 * time.Millisecond,
			SpawnInterval:   3 * time.Second,
			Decision:        500 * time.Millisecond,
			Freeze:          10 * time.Second,
			Fortify:         15 * time.Second,
			Protect:         10 * time.Second,
			SpawnProtect:    3 * time.Second,
			SpawnAnimation:  time.Second,
			FoodInterval:    15 * time.Second,
			StageTransition: 2 * time.Second,
			WaterFrame:      500 * time.Millisecond,
		},
		Food: FoodConfig{
			MaxActive: 1,
			Weights: FoodWeights{
				Detonate:        1,
				Freeze:          1,
				Fortify:         1,
				ExtraGun:        1,
				Invulnerability: 1,
				ExtraLife:       1,
				ExtraScore:      1,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "stage",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				ShootBoost:     0.2,
				ChangeBoost:    0.2,
				SpawnReduction: 0.5,
				ExtraMaxActive: 2,
				TierShift:      0.5,
			},
		},
	}
}
