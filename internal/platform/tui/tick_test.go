package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockStartAccept(t *testing.T) {
	var c Clock
	assert.False(t, c.Running())
	assert.Nil(t, c.Next(), "a stopped clock schedules nothing")

	cmd := c.Start(time.Millisecond)
	require.NotNil(t, cmd)
	assert.True(t, c.Running())

	msg, ok := cmd().(TickMsg)
	require.True(t, ok)
	assert.True(t, c.Accept(msg))
	assert.False(t, c.Accept(TickMsg{Gen: msg.Gen - 1}))
}

func TestClockStopDropsInFlightTick(t *testing.T) {
	var c Clock
	msg := c.Start(time.Millisecond)().(TickMsg)

	c.Stop()
	c.Stop()
	assert.False(t, c.Running())
	assert.False(t, c.Accept(msg))
	assert.Nil(t, c.Next())

	// A new run does not revive the old tick
	c.Start(time.Millisecond)
	assert.False(t, c.Accept(msg))
}

func TestClocksNeverShareGenerations(t *testing.T) {
	var a, b Clock
	msgA := a.Start(time.Millisecond)().(TickMsg)
	msgB := b.Start(time.Millisecond)().(TickMsg)

	assert.NotEqual(t, msgA.Gen, msgB.Gen)
	assert.False(t, a.Accept(msgB))
	assert.False(t, b.Accept(msgA))
}

func TestClockSetInterval(t *testing.T) {
	var c Clock
	c.Start(150 * time.Millisecond)
	assert.Equal(t, 150*time.Millisecond, c.Interval())

	c.SetInterval(145 * time.Millisecond)
	assert.Equal(t, 145*time.Millisecond, c.Interval())

	c.SetInterval(0)
	assert.Equal(t, 145*time.Millisecond, c.Interval(), "non-positive intervals are ignored")
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, time.Second/30, tickInterval(30))
}
