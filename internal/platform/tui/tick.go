// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// clock run that scheduled it.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// generations is shared by every clock so a tick scheduled by one game
// can never be accepted by the game that replaced it in the same program.
var generations atomic.Uint64

// Clock schedules simulation ticks for one game session.
//
// Each Start opens a new generation. Ticks carry the generation they were
// scheduled under and Accept rejects anything older, so stopping the clock
// cancels the tick already in flight.
type Clock struct {
	gen      uint64
	running  bool
	interval time.Duration
}

// Start begins a new run at the given interval and schedules its first tick.
func (c *Clock) Start(interval time.Duration) tea.Cmd {
	c.gen = generations.Add(1)
	c.running = true
	c.SetInterval(interval)
	return c.schedule()
}

// Stop halts the clock. Calling it on a stopped clock does nothing.
func (c *Clock) Stop() {
	c.running = false
}

// SetInterval changes the delay before the next scheduled tick.
// Non-positive intervals are ignored.
func (c *Clock) SetInterval(interval time.Duration) {
	if interval > 0 {
		c.interval = interval
	}
}

// Interval returns the current tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Running reports whether the clock is started.
func (c *Clock) Running() bool {
	return c.running
}

// Accept reports whether msg belongs to the current run.
func (c *Clock) Accept(msg TickMsg) bool {
	return c.running && msg.Gen == c.gen
}

// Next schedules the following tick of the current run, or nothing when
// stopped.
func (c *Clock) Next() tea.Cmd {
	if !c.running {
		return nil
	}
	return c.schedule()
}

func (c *Clock) schedule() tea.Cmd {
	gen := c.gen
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}

// tickInterval converts a tick rate to an interval, defaulting to 60/s.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
