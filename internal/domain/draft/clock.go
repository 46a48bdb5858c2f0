package draft

import (
	"math"
	"time"
)

const (
	DefaultSnakeTurnDuration  = 150 * time.Second
	DefaultWaiverTurnDuration = 180 * time.Second
)

// ClockState is the baseline a turn countdown is derived from. It holds no
// ticking value: remaining time is always computed against a supplied now.
type ClockState struct {
	Duration time.Duration `json:"duration"`
	ResetAt  time.Time     `json:"reset_at"`
	Paused   bool          `json:"paused"`
	// Frozen holds the remaining time captured when the clock was paused.
	Frozen time.Duration `json:"frozen"`
}

// ClockView is what viewers render.
type ClockView struct {
	DurationSeconds  int
	RemainingSeconds int
	WarningRaised    bool
	Paused           bool
	Running          bool
}

func NewClockState(duration time.Duration, now time.Time) ClockState {
	return ClockState{Duration: duration, ResetAt: now}
}

// Remaining never goes below zero.
func (c ClockState) Remaining(now time.Time) time.Duration {
	if c.Paused {
		return clampDuration(c.Frozen, c.Duration)
	}
	return clampDuration(c.Duration-now.Sub(c.ResetAt), c.Duration)
}

// Expired reports that the countdown reached zero and the warning is raised.
func (c ClockState) Expired(now time.Time) bool {
	return c.Remaining(now) <= 0
}

// Reset restarts the countdown at the full duration. A paused clock stays paused.
func (c ClockState) Reset(now time.Time) ClockState {
	c.ResetAt = now
	if c.Paused {
		c.Frozen = c.Duration
	}
	return c
}

// Pause freezes the remaining time.
func (c ClockState) Pause(now time.Time) ClockState {
	if c.Paused {
		return c
	}
	c.Frozen = c.Remaining(now)
	c.Paused = true
	return c
}

// Resume continues from the frozen remaining time.
func (c ClockState) Resume(now time.Time) ClockState {
	if !c.Paused {
		return c
	}
	c.ResetAt = now.Add(c.Frozen - c.Duration)
	c.Paused = false
	c.Frozen = 0
	return c
}

// View renders the clock. A clock only counts down while running, which the
// caller decides from session status.
func (c ClockState) View(now time.Time, running bool) ClockView {
	view := ClockView{
		DurationSeconds: int(c.Duration / time.Second),
		Paused:          c.Paused,
		Running:         running && !c.Paused,
	}
	if !running {
		view.RemainingSeconds = view.DurationSeconds
		return view
	}

	remaining := c.Remaining(now)
	view.RemainingSeconds = int(math.Ceil(remaining.Seconds()))
	view.WarningRaised = remaining <= 0
	if view.WarningRaised {
		view.Running = false
	}
	return view
}

func clampDuration(v, max time.Duration) time.Duration {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
