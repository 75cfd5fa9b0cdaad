package core

// Phase is the lifecycle state of a game session.
//
//	NotStarted -> Running <-> Paused
//	Running, Paused -> GameOver
//
// Restarting discards the session and creates a fresh Running one.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns the phase name used in snapshots and logs.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Start moves a waiting session to Running. Other phases are unchanged.
func (p Phase) Start() Phase {
	if p == PhaseNotStarted {
		return PhaseRunning
	}
	return p
}

// TogglePause flips Running and Paused. Other phases are unchanged.
func (p Phase) TogglePause() Phase {
	switch p {
	case PhaseRunning:
		return PhasePaused
	case PhasePaused:
		return PhaseRunning
	default:
		return p
	}
}

// End moves a started session to GameOver.
func (p Phase) End() Phase {
	if p == PhaseRunning || p == PhasePaused {
		return PhaseGameOver
	}
	return p
}

// CanRestart reports whether a restart request is honored in this phase.
// Restart is accepted at any time once the session has started.
func (p Phase) CanRestart() bool {
	return p != PhaseNotStarted
}

// Advancing reports whether simulation steps run in this phase.
func (p Phase) Advancing() bool {
	return p == PhaseRunning
}
