package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Ticks per second for games without their own pace (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	HighScore  int    // Best score recorded so far, shown in the HUD
	Difficulty string // Difficulty preset name, empty means the config as loaded
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int   // Current score
	Phase    Phase // Lifecycle phase
	GameOver bool  // Whether the game has ended
	Paused   bool  // Whether the game is paused
	Won      bool  // Whether the game ended because the board was filled
	Epoch    int   // Incremented every time a fresh session is created
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
