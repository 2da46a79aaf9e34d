package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseTanks(DefaultTanksYAML())
	if err != nil {
		t.Fatalf("ParseTanks(embedded) error = %v", err)
	}
	def := DefaultTanksConfig()

	if cfg.Map != def.Map {
		t.Errorf("Map = %+v, expected %+v", cfg.Map, def.Map)
	}
	if cfg.Timers != def.Timers {
		t.Errorf("Timers = %+v, expected %+v", cfg.Timers, def.Timers)
	}
	if cfg.Tanks != def.Tanks {
		t.Errorf("Tanks = %+v, expected %+v", cfg.Tanks, def.Tanks)
	}
	if len(cfg.Terrain.BrickAreas) != len(def.Terrain.BrickAreas) {
		t.Errorf("BrickAreas len = %d, expected %d", len(cfg.Terrain.BrickAreas), len(def.Terrain.BrickAreas))
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(embedded) = %v, expected nil", err)
	}
}

func TestLoadTanksCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tanks.yaml")
	doc := []byte("enemies:\n  per_stage: 5\ntimers:\n  freeze: 2s\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTanks(path)
	if err != nil {
		t.Fatalf("LoadTanks() error = %v", err)
	}
	if cfg.Enemies.PerStage != 5 {
		t.Errorf("PerStage = %d, expected 5", cfg.Enemies.PerStage)
	}
	if cfg.Timers.Freeze != 2*time.Second {
		t.Errorf("Freeze = %v, expected 2s", cfg.Timers.Freeze)
	}
	// untouched keys keep their defaults
	if cfg.Map.Cube != 60 {
		t.Errorf("Cube = %d, expected 60", cfg.Map.Cube)
	}
}

func TestLoadTanksMissingFile(t *testing.T) {
	_, err := LoadTanks(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadTanks() of a missing file should fail")
	}
}

func TestLoadTanksRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tanks.yaml")
	doc := []byte("terrain:\n  weights: {blank: 0, brick: 0, steel: 0, grass: 0, water: 0}\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTanks(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadTanks() error = %v, expected *ValidationError", err)
	}
	if verr.Code != CodeBadWeights {
		t.Errorf("Code = %q, expected %q", verr.Code, CodeBadWeights)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TanksConfig)
		code   string
	}{
		{"defaults", func(*TanksConfig) {}, ""},
		{"zero columns", func(c *TanksConfig) { c.Map.Columns = 0 }, CodeBadMap},
		{"cube not multiple of 4", func(c *TanksConfig) { c.Map.Cube = 30 }, CodeBadMap},
		{"negative terrain weight", func(c *TanksConfig) { c.Terrain.Weights.Water = -1 }, CodeBadWeights},
		{"zero enemy weights", func(c *TanksConfig) { c.Enemies.Weights = []float64{0, 0, 0} }, CodeBadWeights},
		{"two enemy weights", func(c *TanksConfig) { c.Enemies.Weights = []float64{1, 1} }, CodeBadWeights},
		{"food weights zero", func(c *TanksConfig) { c.Food.Weights = FoodWeights{} }, CodeBadWeights},
		{"steel area outside", func(c *TanksConfig) { c.Terrain.SteelAreas = []TileCoord{{Row: 10, Col: 0}} }, CodeOutOfBounds},
		{"home outside", func(c *TanksConfig) { c.Terrain.Home = TileCoord{Row: 0, Col: -1} }, CodeOutOfBounds},
		{"enemy spawn outside", func(c *TanksConfig) { c.Enemies.SpawnColumns = []int{13} }, CodeOutOfBounds},
		{"single player spawn", func(c *TanksConfig) { c.Players.SpawnColumns = []int{4} }, CodeOutOfBounds},
		{"zero lives", func(c *TanksConfig) { c.Players.Lives = 0 }, CodeBadCount},
		{"zero max active", func(c *TanksConfig) { c.Enemies.MaxActive = 0 }, CodeBadCount},
		{"shoot above one", func(c *TanksConfig) { c.Enemies.ShootWeight = 1.5 }, CodeBadProbability},
		{"zero speed", func(c *TanksConfig) { c.Tanks.Enemy2.Speed = 0 }, CodeBadStats},
		{"zero tick", func(c *TanksConfig) { c.Timers.Tick = 0 }, CodeBadDuration},
		{"negative freeze", func(c *TanksConfig) { c.Timers.Freeze = -time.Second }, CodeBadDuration},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTanksConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)

			if tc.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected *ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %q, expected %q (%s)", verr.Code, tc.code, verr.Message)
			}
		})
	}
}

func TestApplyTanksPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		lives   int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTanksConfig()
			ApplyTanksPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Players.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Players.Lives, tc.lives)
			}
		})
	}

	if ParsePreset("bogus") != DifficultyNormal {
		t.Error("ParsePreset should fall back to normal")
	}
}
