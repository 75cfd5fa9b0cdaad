package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a name to a preset. The empty string means "use the
// configuration as loaded" and is returned unchanged.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, name)
	}
}

// paceFactor scales starting intervals. Larger is slower.
func paceFactor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.25
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

func scaleMS(ms int, f float64) int {
	return max(int(float64(ms)*f+0.5), 1)
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Fixed keeps the starting pace and turns off the per-food speed-up.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Timing.SpeedupMS = 0
		return
	}
	// The speed floor is never scaled and the starting pace never beats it.
	cfg.Timing.IntervalMS = max(scaleMS(cfg.Timing.IntervalMS, paceFactor(preset)), cfg.Timing.MinIntervalMS)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// Hard also enables gravity progression; fixed disables it.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Progression.Enabled = false
		return
	case DifficultyHard:
		cfg.Progression.Enabled = true
	}
	cfg.Timing.FallMS = scaleMS(cfg.Timing.FallMS, paceFactor(preset))
}

// DifficultyManager derives the Tetris gravity interval from cleared rows.
type DifficultyManager struct {
	cfg  ProgressionConfig
	base time.Duration
}

// NewDifficultyManager creates a new difficulty manager for a starting interval.
func NewDifficultyManager(cfg ProgressionConfig, base time.Duration) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: base}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.LinesPerLevel > 0
}

// Level returns the current level, starting at 1.
func (d *DifficultyManager) Level(lines int) int {
	if !d.IsEnabled() || lines <= 0 {
		return 1
	}
	return 1 + lines/d.cfg.LinesPerLevel
}

// FallInterval returns the gravity interval for the given number of cleared rows.
func (d *DifficultyManager) FallInterval(lines int) time.Duration {
	if !d.IsEnabled() {
		return d.base
	}
	step := time.Duration(d.cfg.StepMS) * time.Millisecond
	floor := time.Duration(d.cfg.MinFallMS) * time.Millisecond
	iv := d.base - time.Duration(d.Level(lines)-1)*step
	if iv < floor {
		return min(floor, d.base)
	}
	return iv
}
