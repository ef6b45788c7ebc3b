package timer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(c *Countdown, ticks int) []TickResult {
	out := make([]TickResult, 0, ticks)
	for i := 0; i < ticks; i++ {
		out = append(out, c.Tick())
	}
	return out
}

func TestSelectArmsCountdown(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(5))
	assert.Equal(t, 300, c.DurationSec)
	assert.Equal(t, 300, c.RemainingSec)
	assert.False(t, c.Running)
	assert.Equal(t, ClassIdle, c.Class())

	err := c.Select(0)
	assert.True(t, errors.Is(err, ErrInvalidPreset))
}

func TestToggleIsDisabledWithoutTimeLeft(t *testing.T) {
	var c Countdown
	assert.False(t, c.Toggle())
	require.NoError(t, c.Select(1))
	assert.True(t, c.Toggle())
	assert.False(t, c.Toggle())
}

func TestTickFiresEachMilestoneOnce(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(1))
	c.Toggle()

	var fired []int
	var finished int
	for _, res := range run(&c, 60) {
		fired = append(fired, res.Milestones...)
		if res.Finished {
			finished++
		}
	}
	assert.Equal(t, []int{50, 75, 90}, fired)
	assert.Equal(t, 1, finished)
	assert.True(t, c.Finished)
	assert.False(t, c.Running)
	assert.Equal(t, 0, c.RemainingSec)

	assert.Empty(t, c.Tick().Milestones, "stopped countdown must not tick")
}

func TestMilestoneTiming(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(1))
	c.Toggle()

	results := run(&c, 30)
	assert.Equal(t, []int{50}, results[29].Milestones)
	for _, res := range results[:29] {
		assert.Empty(t, res.Milestones)
	}
}

func TestPausedCountdownDoesNotTick(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(1))
	c.Tick()
	assert.Equal(t, 60, c.RemainingSec)
}

func TestReselectRearmsMilestones(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(1))
	c.Toggle()
	run(&c, 40)

	require.NoError(t, c.Select(1))
	c.Toggle()
	var fired []int
	for _, res := range run(&c, 60) {
		fired = append(fired, res.Milestones...)
	}
	assert.Equal(t, []int{50, 75, 90}, fired)
}

func TestClassThresholds(t *testing.T) {
	c := Countdown{DurationSec: 100, RemainingSec: 100, Running: true}
	assert.Equal(t, ClassRunning, c.Class())
	c.RemainingSec = 25
	assert.Equal(t, ClassWarning, c.Class())
	c.RemainingSec = 10
	assert.Equal(t, ClassCritical, c.Class())
	c = Countdown{DurationSec: 100, RemainingSec: 60}
	assert.Equal(t, ClassIdle, c.Class())
	assert.InDelta(t, 0.4, c.Progress(), 1e-9)
}

func TestResetClearsEverything(t *testing.T) {
	var c Countdown
	require.NoError(t, c.Select(10))
	c.Toggle()
	c.Tick()
	c.Reset()
	assert.Equal(t, Countdown{}, c)
	assert.Equal(t, float64(0), c.Progress())
}

func TestPresetLabels(t *testing.T) {
	labels := make([]string, 0, len(Presets))
	for _, p := range Presets {
		labels = append(labels, PresetLabel(p))
	}
	assert.Equal(t, []string{"5 min", "10 min", "15 min", "30 min", "45 min", "1 hour", "1.5 hours", "2 hours"}, labels)
}
