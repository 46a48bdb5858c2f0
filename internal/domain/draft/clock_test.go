package draft

import (
	"testing"
	"time"
)

func TestClockState_CountsDownAndStopsAtZero(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	clock := NewClockState(DefaultSnakeTurnDuration, start)

	view := clock.View(start.Add(30*time.Second), true)
	if view.RemainingSeconds != 120 || view.WarningRaised {
		t.Fatalf("expected 120s remaining without warning, got %+v", view)
	}

	view = clock.View(start.Add(10*time.Minute), true)
	if view.RemainingSeconds != 0 {
		t.Fatalf("expected remaining to stop at zero, got %d", view.RemainingSeconds)
	}
	if !view.WarningRaised {
		t.Fatalf("expected warning once expired")
	}
	if view.Running {
		t.Fatalf("expected expired clock to stop running")
	}
}

func TestClockState_NotRunningShowsFullDuration(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	clock := NewClockState(DefaultWaiverTurnDuration, start)

	view := clock.View(start.Add(time.Hour), false)
	if view.RemainingSeconds != 180 || view.WarningRaised || view.Running {
		t.Fatalf("expected idle clock at 180s, got %+v", view)
	}
}

func TestClockState_PauseResumePreservesRemaining(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	clock := NewClockState(DefaultSnakeTurnDuration, start)

	clock = clock.Pause(start.Add(50 * time.Second))
	if got := clock.Remaining(start.Add(5 * time.Minute)); got != 100*time.Second {
		t.Fatalf("expected paused clock frozen at 100s, got %s", got)
	}

	resumedAt := start.Add(5 * time.Minute)
	clock = clock.Resume(resumedAt)
	if got := clock.Remaining(resumedAt); got != 100*time.Second {
		t.Fatalf("expected 100s right after resume, got %s", got)
	}
	if got := clock.Remaining(resumedAt.Add(40 * time.Second)); got != 60*time.Second {
		t.Fatalf("expected 60s after 40s running, got %s", got)
	}
}

func TestClockState_ResetRestoresFullDuration(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	clock := NewClockState(DefaultSnakeTurnDuration, start)

	later := start.Add(200 * time.Second)
	if !clock.Expired(later) {
		t.Fatalf("expected clock expired")
	}
	clock = clock.Reset(later)
	if got := clock.Remaining(later); got != DefaultSnakeTurnDuration {
		t.Fatalf("expected full duration after reset, got %s", got)
	}

	clock = clock.Pause(later.Add(10 * time.Second)).Reset(later.Add(20 * time.Second))
	if !clock.Paused {
		t.Fatalf("expected reset to keep the clock paused")
	}
	if got := clock.Remaining(later.Add(time.Hour)); got != DefaultSnakeTurnDuration {
		t.Fatalf("expected paused reset clock at full duration, got %s", got)
	}
}
