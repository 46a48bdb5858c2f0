package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("round_number", "pick_number", "subject_id").
		From("draft_picks").
		Where(Eq("session_public_id", "s1"), IsNotNull("subject_id")).
		OrderBy("round_number DESC", "pick_number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT round_number, pick_number, subject_id FROM draft_picks WHERE session_public_id = $1 AND subject_id IS NOT NULL ORDER BY round_number DESC, pick_number DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("draft_order_entries").
		Columns("session_public_id", "participant_id").
		Values("s1", "A1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO draft_order_entries (session_public_id, participant_id) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "s1" || args[1] != "A1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("draft_sessions").
		Set("status", "in_progress").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE draft_sessions SET status = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "in_progress" || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdate(t *testing.T) {
	query, args, err := Select("subject_id").
		From("draft_picks").
		Where(Eq("session_public_id", "s1"), Eq("round_number", 2), Eq("pick_number", 3)).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select for update: %v", err)
	}

	wantQuery := "SELECT subject_id FROM draft_picks WHERE session_public_id = $1 AND round_number = $2 AND pick_number = $3 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string  `db:"public_id"`
		Name     string  `db:"name"`
		Ignored  string  `db:"-"`
		OwnerID  *string `db:"owner_id"`
	}

	query, args, err := InsertModel("roster_players", row{PublicID: "p1", Name: "Striker"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	wantQuery := "INSERT INTO roster_players (public_id, name, owner_id) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_EmbeddedAndErrors(t *testing.T) {
	type Audit struct {
		CreatedBy string `db:"created_by"`
	}
	type row struct {
		Audit
		PublicID string `db:"public_id"`
	}

	query, args, err := InsertModel("draft_sessions", &row{Audit: Audit{CreatedBy: "admin"}, PublicID: "s1"}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	wantQuery := "INSERT INTO draft_sessions (created_by, public_id) VALUES ($1, $2) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "admin" || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	var nilRow *row
	if _, _, err := InsertModel("draft_sessions", nilRow, ""); err == nil {
		t.Fatalf("expected nil model to be rejected")
	}
	if _, _, err := InsertModel("draft_sessions", struct{ Name string }{Name: "x"}, ""); err == nil {
		t.Fatalf("expected untagged model to be rejected")
	}
}

func TestUpdateBuilder_ExprArgsAndSuffix(t *testing.T) {
	query, args, err := Update("draft_sessions").
		SetExpr("started_at", "COALESCE(started_at, ?)", "2026-08-01T19:00:00Z").
		Set("status", "in_progress").
		Where(Eq("public_id", "s1"), IsNull("completed_at")).
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE draft_sessions SET started_at = COALESCE(started_at, $1), status = $2 WHERE public_id = $3 AND completed_at IS NULL RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRowAndErrors(t *testing.T) {
	query, args, err := InsertInto("draft_picks").
		Columns("round", "pick").
		Values(1, 1).
		Values(1, 2).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if want := "INSERT INTO draft_picks (round, pick) VALUES ($1, $2), ($3, $4)"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[3] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("draft_picks").Columns("round", "pick").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected short row to be rejected")
	}
	if _, _, err := Select().From("draft_picks").ToSQL(); err == nil {
		t.Fatalf("expected select without columns to be rejected")
	}
	if _, _, err := Update("draft_picks").ToSQL(); err == nil {
		t.Fatalf("expected update without sets to be rejected")
	}
}
