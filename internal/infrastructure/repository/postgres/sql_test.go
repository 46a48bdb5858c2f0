package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches constraint", func(t *testing.T) {
		err := fmt.Errorf("assign pick: %w", &pq.Error{Code: "23505", Constraint: subjectUniqueIndex})
		if !isUniqueViolation(err, subjectUniqueIndex) {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("any constraint when empty", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "draft_picks_pkey"}
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected true for unique violation with empty filter")
		}
	})

	t.Run("ignores other constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "draft_picks_pkey"}
		if isUniqueViolation(err, subjectUniqueIndex) {
			t.Fatalf("expected false for a different constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err, "") {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key"), "") {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get session: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("connection reset")) {
		t.Fatalf("expected unrelated error to not be not found")
	}
}

func TestNullHelpers(t *testing.T) {
	if got := nullString(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := toNullString(""); got.Valid {
		t.Fatalf("expected empty string to be null")
	}
	if got := nullTimePtr(sql.NullTime{}); got != nil {
		t.Fatalf("expected nil time, got %v", got)
	}

	at := time.Date(2026, 9, 1, 19, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := nullTimePtr(sql.NullTime{Time: at, Valid: true})
	if got == nil || got.Location() != time.UTC || !got.Equal(at) {
		t.Fatalf("expected UTC time equal to input, got %v", got)
	}
	if nullInt(sql.NullInt64{Int64: 3, Valid: true}) != 3 {
		t.Fatalf("expected 3")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
