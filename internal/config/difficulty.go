package config

import (
	"math"
	"time"
)

// DifficultyManager calculates stage-dependent enemy parameters.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a 1-based stage.
func (d *DifficultyManager) Level(stage int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "stage" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt - 1)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(stage-1)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Enemies returns the enemy policy scaled for the stage.
func (d *DifficultyManager) Enemies(base EnemyConfig, stage int) EnemyConfig {
	level := d.Level(stage)
	s := d.cfg.Scaling

	out := base
	out.ShootWeight = clampF(base.ShootWeight+level*s.ShootBoost, 0.0, 1.0)
	out.ChangeWeight = clampF(base.ChangeWeight+level*s.ChangeBoost, 0.0, 1.0)
	out.MaxActive = base.MaxActive + int(math.Round(level*float64(s.ExtraMaxActive)))

	out.Weights = shiftTiers(base.Weights, clampF(level*s.TierShift, 0.0, 1.0))
	return out
}

// shiftTiers moves a fraction of the tier 1 weight to the highest tier that
// already has a positive weight. Tiers configured at zero stay at zero.
func shiftTiers(weights []float64, fraction float64) []float64 {
	out := append([]float64(nil), weights...)
	if len(out) < 2 || fraction <= 0 {
		return out
	}
	for i := len(out) - 1; i > 0; i-- {
		if out[i] > 0 {
			shift := out[0] * fraction
			out[0] -= shift
			out[i] += shift
			break
		}
	}
	return out
}

// SpawnInterval returns the enemy spawn interval scaled for the stage.
// The result never drops below a quarter of the base interval.
func (d *DifficultyManager) SpawnInterval(base time.Duration, stage int) time.Duration {
	cut := clampF(d.Level(stage)*d.cfg.Scaling.SpawnReduction, 0.0, 0.75)
	return time.Duration(float64(base) * (1.0 - cut))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
