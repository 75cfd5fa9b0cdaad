package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:  20,
			Height: 20,
		},
		Timing: SnakeTiming{
			IntervalMS:    150,
			SpeedupMS:     5,
			MinIntervalMS: 50,
		},
		Scoring: SnakeScoring{
			Food: 10,
		},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Timing: TetrisTiming{
			FallMS: 800,
		},
		Scoring: TetrisScoring{
			Lines: []int{100, 300, 500, 800},
			Lock:  10,
		},
		Progression: ProgressionConfig{
			Enabled:       false,
			LinesPerLevel: 10,
			StepMS:        60,
			MinFallMS:     100,
		},
	}
}
