// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// BoardConfig defines the grid dimensions of a board game.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Board   BoardConfig  `yaml:"board"`
	Timing  SnakeTiming  `yaml:"timing"`
	Scoring SnakeScoring `yaml:"scoring"`
	Rules   SnakeRules   `yaml:"rules"`
}

// SnakeTiming defines the movement pace. Each food eaten shortens the
// interval by SpeedupMS until MinIntervalMS is reached.
type SnakeTiming struct {
	IntervalMS    int `yaml:"interval_ms"`
	SpeedupMS     int `yaml:"speedup_ms"`
	MinIntervalMS int `yaml:"min_interval_ms"`
}

// SnakeScoring defines points awarded.
type SnakeScoring struct {
	Food int `yaml:"food"`
}

// SnakeRules toggles rule variants.
type SnakeRules struct {
	// TailVacates lets the head move into the cell the tail is leaving.
	// Off by default: any body cell, tail included, is fatal.
	TailVacates bool `yaml:"tail_vacates"`
}

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Timing      TetrisTiming      `yaml:"timing"`
	Scoring     TetrisScoring     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
}

// TetrisTiming defines gravity.
type TetrisTiming struct {
	FallMS int `yaml:"fall_ms"`
}

// TetrisScoring defines points for locks and cleared rows.
type TetrisScoring struct {
	Lines []int `yaml:"lines"` // Points for clearing 1, 2, 3 and 4 rows at once
	Lock  int   `yaml:"lock"`
}

// ProgressionConfig speeds gravity up as rows are cleared.
type ProgressionConfig struct {
	Enabled       bool `yaml:"enabled"`
	LinesPerLevel int  `yaml:"lines_per_level"`
	StepMS        int  `yaml:"step_ms"`
	MinFallMS     int  `yaml:"min_fall_ms"`
}

// Interval returns the starting move interval.
func (c SnakeConfig) Interval() time.Duration {
	return time.Duration(c.Timing.IntervalMS) * time.Millisecond
}

// Validate checks that the configuration can drive a game.
func (c SnakeConfig) Validate() error {
	if err := c.Board.validate(2); err != nil {
		return err
	}
	if c.Timing.IntervalMS <= 0 || c.Timing.MinIntervalMS <= 0 {
		return fmt.Errorf("%w: snake intervals must be positive", ErrInvalid)
	}
	if c.Timing.MinIntervalMS > c.Timing.IntervalMS {
		return fmt.Errorf("%w: snake min_interval_ms %d exceeds interval_ms %d",
			ErrInvalid, c.Timing.MinIntervalMS, c.Timing.IntervalMS)
	}
	if c.Timing.SpeedupMS < 0 || c.Scoring.Food < 0 {
		return fmt.Errorf("%w: snake speedup and food points must not be negative", ErrInvalid)
	}
	return nil
}

// FallInterval returns the starting gravity interval.
func (c TetrisConfig) FallInterval() time.Duration {
	return time.Duration(c.Timing.FallMS) * time.Millisecond
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	if err := c.Board.validate(4); err != nil {
		return err
	}
	// Pieces spawn at x = width/2-1 and are up to four cells wide.
	if c.Board.Width/2-1+4 > c.Board.Width {
		return fmt.Errorf("%w: tetris board must be at least 5 wide, got %d", ErrInvalid, c.Board.Width)
	}
	if c.Timing.FallMS <= 0 {
		return fmt.Errorf("%w: tetris fall_ms must be positive", ErrInvalid)
	}
	if len(c.Scoring.Lines) != 4 {
		return fmt.Errorf("%w: tetris scoring.lines needs 4 entries, got %d", ErrInvalid, len(c.Scoring.Lines))
	}
	for _, p := range c.Scoring.Lines {
		if p < 0 {
			return fmt.Errorf("%w: tetris line points must not be negative", ErrInvalid)
		}
	}
	if c.Scoring.Lock < 0 {
		return fmt.Errorf("%w: tetris lock points must not be negative", ErrInvalid)
	}
	if p := c.Progression; p.Enabled && (p.LinesPerLevel <= 0 || p.MinFallMS <= 0) {
		return fmt.Errorf("%w: tetris progression needs positive lines_per_level and min_fall_ms", ErrInvalid)
	}
	return nil
}

func (b BoardConfig) validate(minSide int) error {
	if b.Width < minSide || b.Height < minSide {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d",
			ErrInvalid, b.Width, b.Height, minSide, minSide)
	}
	return nil
}
