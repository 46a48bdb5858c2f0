package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM draft_picks \t WHERE session_id = $1 ")
	want := "SELECT * FROM draft_picks WHERE session_id = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}

	if got := formatDBQueryForTrace("  \n "); got != "" {
		t.Fatalf("expected blank query to stay empty, got %q", got)
	}

	long := formatDBQueryForTrace(strings.Repeat("x", maxTracedQueryLength+10))
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got length %d", len(long))
	}
}
