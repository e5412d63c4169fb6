package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectWithConditionsAndOrder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("club_id", "club-1"), Eq("league", "Select Ligaen")).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id, name FROM teams WHERE club_id = $1 AND league = $2 ORDER BY name ASC"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"club-1", "Select Ligaen"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectWithInAndExpr(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(
			In("league", []any{"A", "B"}),
			Expr("(home_hold_id = $? OR away_hold_id = $?)", "h1", "h1"),
		).
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM matches WHERE league IN ($1, $2) AND (home_hold_id = $3 OR away_hold_id = $4) LIMIT 5"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"A", "B", "h1", "h1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectIsNull(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(IsNull("gender")).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "SELECT id FROM teams WHERE gender IS NULL" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInRejectsEmptyValues(t *testing.T) {
	_, _, err := Select("id").From("teams").Where(In("league", nil)).ToSQL()
	if err == nil {
		t.Fatal("expected error for empty IN list")
	}
}

func TestExprArgCountMismatch(t *testing.T) {
	_, _, err := Select("id").From("matches").Where(Expr("home = $?")).ToSQL()
	if err == nil {
		t.Fatal("expected error for placeholder/arg mismatch")
	}
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	query, args, err := InsertInto("clubs").
		Columns("id", "club_no", "name").
		Values("c1", "101", "Alpha").
		Values("c2", "102", "Beta").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO clubs (id, club_no, name) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertRowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("clubs").Columns("id", "name").Values("only-one").ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		Skipped string `db:"-"`
	}

	query, args, err := InsertModel("staged_imports", row{ID: "i1", Name: "file.xlsx"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "INSERT INTO staged_imports (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{"i1", "file.xlsx"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
