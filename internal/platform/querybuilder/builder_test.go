package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("*").
		From("suspension_records").
		Where(Eq("season_public_id", "liga-2026"), IsNull("deleted_at")).
		OrderBy("trigger_round", "trigger_match_public_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM suspension_records WHERE season_public_id = $1 AND deleted_at IS NULL ORDER BY trigger_round, trigger_match_public_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "liga-2026" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_In(t *testing.T) {
	query, args, err := Select("public_id").
		From("players").
		Where(In("public_id", []any{"p-1", "p-2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM players WHERE public_id IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	// An empty id list must match nothing, not everything.
	query, _, err = Select("public_id").
		From("players").
		Where(In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build empty-in query: %v", err)
	}
	if query != "SELECT public_id FROM players WHERE 1=0" {
		t.Fatalf("unexpected empty-in query: %s", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("seasons").
		Columns("public_id", "name").
		Values("liga-2026", "Liga 2026").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO seasons (public_id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "liga-2026" || args[1] != "Liga 2026" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	model := struct {
		PublicID string `db:"public_id"`
		Status   string `db:"status"`
		Internal string `db:"-"`
	}{PublicID: "sus-1", Status: "ACTIVE", Internal: "skipped"}

	query, args, err := InsertModel("suspension_records", model, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO suspension_records (public_id, status) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "sus-1" || args[1] != "ACTIVE" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("suspension_records").
		Set("served_matches", 1).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE suspension_records SET served_matches = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}
