package staging

import (
	"strings"
	"testing"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

func TestNormalizeClubsDedupesAndSorts(t *testing.T) {
	clubs := NormalizeClubs([]Row{
		{"KlubID": "102", "Forening": "Beta IF"},
		{"KlubID": "101", "Forening": "Alpha Floorball"},
		{"KlubID": "102", "Forening": "Beta IF (duplikat)"},
		{"Forening": "Uden Nummer"},
		{"Kommentar": "tom række"},
	})

	if len(clubs) != 3 {
		t.Fatalf("expected 3 clubs, got %d: %v", len(clubs), clubs)
	}
	if clubs[0].ClubNo != "101" || clubs[1].ClubNo != "102" {
		t.Fatalf("expected club-number sort, got %v", clubs)
	}
	if clubs[1].Name != "Beta IF" {
		t.Fatalf("first occurrence should win the dedupe, got %q", clubs[1].Name)
	}
	if clubs[2].Name != "Uden Nummer" || clubs[2].ClubNo != "" {
		t.Fatalf("unexpected numberless club %v", clubs[2])
	}
}

func TestNormalizeClubsSortsWithDanishCollation(t *testing.T) {
	clubs := NormalizeClubs([]Row{
		{"Forening": "Ågård IK"},
		{"Forening": "Ølstykke FC"},
		{"Forening": "Borup Floorball"},
		{"Forening": "Æblehaven"},
	})

	// Æ, ø and å sort after z, not by their byte values.
	want := []string{"Borup Floorball", "Æblehaven", "Ølstykke FC", "Ågård IK"}
	if len(clubs) != len(want) {
		t.Fatalf("expected %d clubs, got %v", len(want), clubs)
	}
	for i, name := range want {
		if clubs[i].Name != name {
			t.Fatalf("expected %q at position %d, got %v", name, i, clubs)
		}
	}
}

func TestNormalizeClubsNameFallsBackToNumber(t *testing.T) {
	clubs := NormalizeClubs([]Row{{"KlubNr": "301"}})
	if len(clubs) != 1 || clubs[0].Name != "301" {
		t.Fatalf("got %v", clubs)
	}
}

func TestNormalizeTeamsRequiredFields(t *testing.T) {
	teams := NormalizeTeams([]Row{
		// Complete row.
		{"Sæson": "2025/2026", "KlubID": "101", "Forening": "Alpha", "Liga": "Select Ligaen", "Hold": "Alpha Herrer", "HoldID": "H1", "Køn": "Herrer"},
		// Missing league: dropped.
		{"KlubID": "101", "Hold": "Alpha 2"},
		// Missing team name: dropped.
		{"KlubID": "101", "Liga": "Select Ligaen"},
		// Club name only is an acceptable club reference.
		{"Forening": "Beta", "Liga": "1. Division", "Hold": "Beta Damer", "Køn": "Damer"},
		// Fully empty: dropped.
		{"Noter": ""},
	})

	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d: %v", len(teams), teams)
	}
	if teams[0].Gender != gender.Men || teams[1].Gender != gender.Women {
		t.Fatalf("unexpected genders: %v", teams)
	}
	if teams[0].HoldID != "H1" {
		t.Fatalf("unexpected hold id: %v", teams[0])
	}
}

func TestNormalizeTeamsKeepsSeasonVariants(t *testing.T) {
	teams := NormalizeTeams([]Row{
		{"Sæson": "2024/2025", "KlubID": "101", "Liga": "Select Ligaen", "Hold": "Alpha Herrer"},
		{"Sæson": "2025/2026", "KlubID": "101", "Liga": "Select Ligaen", "Hold": "Alpha Herrer"},
		// Same season again: deduped.
		{"Sæson": "2025/2026", "KlubID": "101", "Liga": "Select Ligaen", "Hold": "Alpha Herrer"},
	})

	if len(teams) != 2 {
		t.Fatalf("expected the two season variants, got %d", len(teams))
	}
}

func TestNormalizeTeamsClubNameFallsBackToNumber(t *testing.T) {
	teams := NormalizeTeams([]Row{
		{"KlubID": "101", "Liga": "Select Ligaen", "Hold": "Alpha"},
	})
	if len(teams) != 1 || teams[0].ClubName != "101" {
		t.Fatalf("got %v", teams)
	}
}

func TestNormalizeMatchesParsesCells(t *testing.T) {
	matches := NormalizeMatches([]Row{
		{
			"KampID":     "K42",
			"Dato":       float64(45000),
			"Tid":        0.8125,
			"Liga":       "Select Ligaen",
			"Pulje":      "A",
			"Hjemmehold": "Alpha",
			"Udehold":    "Beta",
			"Sted":       "Arena Nord",
			"Resultat":   "3-2",
			"Dommer1":    "A. Hansen",
			"Dommer1_ID": "D9",
			"Køn":        "Herrer",
		},
		{"Noter": "tom"},
	})

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.ExternalID != "K42" || m.DateText != "15-03-2023" || m.TimeText != "19:30" {
		t.Fatalf("unexpected match %+v", m)
	}
	if m.Gender != gender.Men || m.Referee1 != "A. Hansen" || m.Referee1ID != "D9" {
		t.Fatalf("unexpected match %+v", m)
	}
	if m.Date == nil || m.Time == nil {
		t.Fatalf("expected parsed date and time: %+v", m)
	}
}

func TestNormalizeMatchesKeepsUnparseableTimeText(t *testing.T) {
	matches := NormalizeMatches([]Row{
		{"Hjemmehold": "Alpha", "Udehold": "Beta", "Tid": "ca. 19"},
	})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Time != nil || matches[0].TimeText != "ca. 19" {
		t.Fatalf("unexpected %+v", matches[0])
	}
}

func TestValidateMatchesFlagsBadTimes(t *testing.T) {
	good := Match{HomeTeam: "Alpha", AwayTeam: "Beta", TimeText: "19:30"}
	missing := Match{HomeTeam: "Alpha", AwayTeam: "Beta"}
	bad := Match{HomeTeam: "Alpha", AwayTeam: "Beta", TimeText: "ca. 19"}

	if err := ValidateMatches([]Match{good, missing}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateMatches([]Match{good, bad})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if len(err.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %v", err.Problems)
	}
	if !strings.Contains(err.Problems[0], "Alpha - Beta") || !strings.Contains(err.Problems[0], "ca. 19") {
		t.Fatalf("unexpected problem text %q", err.Problems[0])
	}
}

func TestValidateMatchesCapsProblemList(t *testing.T) {
	bad := make([]Match, 25)
	for i := range bad {
		bad[i] = Match{HomeTeam: "A", AwayTeam: "B", TimeText: "nope"}
	}

	err := ValidateMatches(bad)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if len(err.Problems) != 10 {
		t.Fatalf("expected problem list capped at 10, got %d", len(err.Problems))
	}
}
