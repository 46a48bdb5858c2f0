package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 1, 19, 0, 0, 0, time.UTC))
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1}, clock)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	clock.Advance(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteCountsOnlyTransientFailures(t *testing.T) {
	transient := errors.New("connection reset")
	rejected := errors.New("token inactive")
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, nil)

	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return rejected }, isTransient); !errors.Is(err, rejected) {
			t.Fatalf("expected caller error to pass through, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected non-transient errors to keep breaker closed, got %s", state)
	}

	_ = b.Execute(func() error { return transient }, isTransient)
	_ = b.Execute(func() error { return transient }, isTransient)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failures, got %s", state)
	}

	called := false
	if err := b.Execute(func() error { called = true; return nil }, isTransient); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("expected open breaker to skip the call")
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false}, nil)
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("expected nil breaker to run the call, got %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("expected nil breaker to report closed")
	}
}

func TestCircuitBreaker_FillsDefaults(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true}, clock)

	for i := 0; i < DefaultCircuitBreakerConfig().FailureThreshold-1; i++ {
		b.RecordFailure()
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed below the default threshold, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open at the default threshold, got %s", state)
	}

	clock.Advance(DefaultCircuitBreakerConfig().OpenTimeout)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after the default open timeout, got %s", state)
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1}, clock)

	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+">"+string(to))
	})

	b.RecordFailure()
	clock.Advance(time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe after cool down: %v", err)
	}
	b.RecordFailure()
	clock.Advance(time.Second)
	_ = b.Allow()
	b.RecordSuccess()

	want := []string{"closed>open", "open>half_open", "half_open>open", "open>half_open", "half_open>closed"}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}
