package config

import (
	"fmt"
	"time"
)

// Validation error codes.
const (
	CodeBadMap         = "bad_map"
	CodeBadWeights     = "bad_weights"
	CodeOutOfBounds    = "out_of_bounds"
	CodeBadDuration    = "bad_duration"
	CodeBadProbability = "bad_probability"
	CodeBadStats       = "bad_stats"
	CodeBadCount       = "bad_count"
)

// ValidationError reports a configuration that cannot start a session.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a configuration for values the simulation cannot run with.
// It returns the first problem found as a *ValidationError.
func Validate(cfg TanksConfig) error {
	m := cfg.Map
	if m.Columns <= 0 || m.Rows <= 0 {
		return invalid(CodeBadMap, "map must have positive columns and rows, got %dx%d", m.Columns, m.Rows)
	}
	if m.Cube <= 0 || m.Cube%4 != 0 {
		return invalid(CodeBadMap, "cube must be a positive multiple of 4, got %d", m.Cube)
	}

	if err := checkWeights("terrain.weights", cfg.Terrain.Weights.Slice()); err != nil {
		return err
	}
	if err := checkWeights("food.weights", cfg.Food.Weights.Slice()); err != nil {
		return err
	}
	if len(cfg.Enemies.Weights) != 3 {
		return invalid(CodeBadWeights, "enemies.weights needs 3 tier weights, got %d", len(cfg.Enemies.Weights))
	}
	if err := checkWeights("enemies.weights", cfg.Enemies.Weights); err != nil {
		return err
	}

	areas := map[string][]TileCoord{
		"terrain.blank_areas": cfg.Terrain.BlankAreas,
		"terrain.steel_areas": cfg.Terrain.SteelAreas,
		"terrain.brick_areas": cfg.Terrain.BrickAreas,
		"terrain.home":        {cfg.Terrain.Home},
	}
	for name, coords := range areas {
		for _, c := range coords {
			if c.Row < 0 || c.Row >= m.Rows || c.Col < 0 || c.Col >= m.Columns {
				return invalid(CodeOutOfBounds, "%s (%d,%d) outside %dx%d map", name, c.Row, c.Col, m.Rows, m.Columns)
			}
		}
	}

	if len(cfg.Enemies.SpawnColumns) == 0 {
		return invalid(CodeOutOfBounds, "enemies.spawn_columns must not be empty")
	}
	for _, col := range cfg.Enemies.SpawnColumns {
		if col < 0 || col >= m.Columns {
			return invalid(CodeOutOfBounds, "enemy spawn column %d outside map", col)
		}
	}
	if len(cfg.Players.SpawnColumns) < 2 {
		return invalid(CodeOutOfBounds, "players.spawn_columns needs 2 entries, got %d", len(cfg.Players.SpawnColumns))
	}
	for _, col := range cfg.Players.SpawnColumns {
		if col < 0 || col >= m.Columns {
			return invalid(CodeOutOfBounds, "player spawn column %d outside map", col)
		}
	}

	if cfg.Enemies.PerStage < 0 || cfg.Enemies.MaxActive <= 0 {
		return invalid(CodeBadCount, "enemies.per_stage must be >= 0 and max_active > 0")
	}
	if cfg.Players.Lives <= 0 {
		return invalid(CodeBadCount, "players.lives must be positive, got %d", cfg.Players.Lives)
	}
	if cfg.Food.MaxActive < 0 {
		return invalid(CodeBadCount, "food.max_active must be >= 0, got %d", cfg.Food.MaxActive)
	}

	for name, p := range map[string]float64{
		"enemies.change_weight": cfg.Enemies.ChangeWeight,
		"enemies.shoot_weight":  cfg.Enemies.ShootWeight,
	} {
		if p < 0 || p > 1 {
			return invalid(CodeBadProbability, "%s must be within [0,1], got %v", name, p)
		}
	}

	stats := map[string]TankStats{
		"tanks.player": cfg.Tanks.Player,
		"tanks.enemy1": cfg.Tanks.Enemy1,
		"tanks.enemy2": cfg.Tanks.Enemy2,
		"tanks.enemy3": cfg.Tanks.Enemy3,
	}
	for name, s := range stats {
		if s.Speed <= 0 || s.ProjectileSpeed <= 0 || s.AmmoCapacity < 0 || s.Power < 0 {
			return invalid(CodeBadStats, "%s needs positive speeds and non-negative ammo/power", name)
		}
		if s.Speed > m.Cube/4 {
			return invalid(CodeBadStats, "%s speed %d exceeds a quarter tile", name, s.Speed)
		}
	}

	t := cfg.Timers
	durations := map[string]time.Duration{
		"timers.tick":             t.Tick,
		"timers.spawn_interval":   t.SpawnInterval,
		"timers.decision":         t.Decision,
		"timers.freeze":           t.Freeze,
		"timers.fortify":          t.Fortify,
		"timers.protect":          t.Protect,
		"timers.spawn_protect":    t.SpawnProtect,
		"timers.spawn_animation":  t.SpawnAnimation,
		"timers.food_interval":    t.FoodInterval,
		"timers.stage_transition": t.StageTransition,
		"timers.water_frame":      t.WaterFrame,
	}
	for name, d := range durations {
		if d <= 0 {
			return invalid(CodeBadDuration, "%s must be positive, got %v", name, d)
		}
	}
	return nil
}

func checkWeights(name string, weights []float64) error {
	sum := 0.0
	for i, w := range weights {
		if w < 0 {
			return invalid(CodeBadWeights, "%s[%d] is negative (%v)", name, i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return invalid(CodeBadWeights, "%s must sum to a positive value", name)
	}
	return nil
}
