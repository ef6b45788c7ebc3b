// Package timer is the activity countdown: preset durations, one-second
// ticks, milestone cues and the urgency class used for styling.
package timer

import (
	"errors"
	"fmt"
)

var ErrInvalidPreset = errors.New("timer: minutes must be positive")

// Presets are the minute values offered by the activity viewer.
var Presets = []int{5, 10, 15, 30, 45, 60, 90, 120}

// Milestones are elapsed percentages that chime once per preset selection.
var Milestones = []int{50, 75, 90}

const CompletionMessage = "Keep your momentum going!"

type Class string

const (
	ClassIdle     Class = ""
	ClassRunning  Class = "running"
	ClassWarning  Class = "warning"
	ClassCritical Class = "critical"
)

type Countdown struct {
	DurationSec  int
	RemainingSec int
	Running      bool
	Finished     bool
	passed       map[int]bool
}

// TickResult reports what a single tick crossed. Several milestones may be
// crossed at once on very short durations.
type TickResult struct {
	Milestones []int
	Finished   bool
}

func PresetLabel(minutes int) string {
	switch {
	case minutes == 60:
		return "1 hour"
	case minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	case minutes > 60 && minutes%30 == 0:
		return fmt.Sprintf("%.1f hours", float64(minutes)/60)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}

// Select loads a preset, stopping the countdown and rearming milestones.
func (c *Countdown) Select(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPreset, minutes)
	}
	c.DurationSec = minutes * 60
	c.RemainingSec = c.DurationSec
	c.Running = false
	c.Finished = false
	c.passed = make(map[int]bool, len(Milestones))
	return nil
}

// Toggle starts or pauses the countdown. It is a no-op with nothing left to
// count and reports whether the countdown is now running.
func (c *Countdown) Toggle() bool {
	if c.RemainingSec <= 0 {
		c.Running = false
		return false
	}
	c.Running = !c.Running
	return c.Running
}

func (c *Countdown) Reset() {
	*c = Countdown{}
}

func (c *Countdown) Tick() TickResult {
	var res TickResult
	if !c.Running || c.RemainingSec <= 0 || c.DurationSec <= 0 {
		return res
	}
	c.RemainingSec--
	if c.passed == nil {
		c.passed = make(map[int]bool, len(Milestones))
	}
	elapsed := c.DurationSec - c.RemainingSec
	for _, pct := range Milestones {
		if !c.passed[pct] && elapsed*100 >= pct*c.DurationSec {
			c.passed[pct] = true
			res.Milestones = append(res.Milestones, pct)
		}
	}
	if c.RemainingSec <= 0 {
		c.RemainingSec = 0
		c.Running = false
		c.Finished = true
		res.Finished = true
	}
	return res
}

// Progress is the elapsed fraction in [0, 1].
func (c Countdown) Progress() float64 {
	if c.DurationSec <= 0 {
		return 0
	}
	return float64(c.DurationSec-c.RemainingSec) / float64(c.DurationSec)
}

func (c Countdown) Class() Class {
	if c.DurationSec <= 0 {
		return ClassIdle
	}
	remaining := c.RemainingSec * 100
	switch {
	case remaining <= 10*c.DurationSec:
		return ClassCritical
	case remaining <= 25*c.DurationSec:
		return ClassWarning
	case c.Running:
		return ClassRunning
	default:
		return ClassIdle
	}
}
