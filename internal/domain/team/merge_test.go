package team

import (
	"testing"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

func TestMergedSetKeepsFirstSeenOrder(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "team_b", Name: "Beta"})
	set.Add(Team{ID: "team_a", Name: "Alpha"})
	set.Add(Team{ID: "team_b", Name: "Beta Floorball"})

	teams := set.Teams()
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].ID != "team_b" || teams[1].ID != "team_a" {
		t.Fatalf("unexpected order: %v", teams)
	}
}

func TestMergeHoldIDSticks(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "x", HoldID: "H1"})
	set.Add(Team{ID: "x", HoldID: "H2"})

	got, _ := set.Get("x")
	if got.HoldID != "H1" {
		t.Fatalf("expected first hold-id to stick, got %q", got.HoldID)
	}
}

func TestMergeNewerSeasonWinsNameAndGender(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "x", Name: "Alpha Herrer (gammel)", Gender: gender.Unknown, SeasonStartYear: 2024})
	set.Add(Team{ID: "x", Name: "Alpha", Gender: gender.Men, SeasonStartYear: 2025})

	got, _ := set.Get("x")
	if got.Name != "Alpha" {
		t.Fatalf("expected the newer season's name, got %q", got.Name)
	}
	if got.Gender != gender.Men {
		t.Fatalf("expected the newer season's gender, got %q", got.Gender)
	}
	if got.SeasonStartYear != 2025 {
		t.Fatalf("expected season 2025, got %d", got.SeasonStartYear)
	}
}

func TestMergeOlderSeasonDoesNotOverride(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "x", Name: "Alpha", Gender: gender.Men, SeasonStartYear: 2025})
	set.Add(Team{ID: "x", Name: "Alpha Herrer (gammel)", Gender: gender.Women, SeasonStartYear: 2024})

	got, _ := set.Get("x")
	if got.Gender != gender.Men {
		t.Fatalf("older season must not override gender, got %q", got.Gender)
	}
	if got.SeasonStartYear != 2025 {
		t.Fatalf("expected season 2025, got %d", got.SeasonStartYear)
	}
	// The older row's longer name still wins inside the same-or-older branch.
	if got.Name != "Alpha Herrer (gammel)" {
		t.Fatalf("expected the longer name, got %q", got.Name)
	}
}

func TestMergeSameSeasonLongerNameWins(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "x", Name: "Alpha", SeasonStartYear: 2025})
	set.Add(Team{ID: "x", Name: "Alpha Floorball Klub", SeasonStartYear: 2025})
	set.Add(Team{ID: "x", Name: "AFK", SeasonStartYear: 2025})

	got, _ := set.Get("x")
	if got.Name != "Alpha Floorball Klub" {
		t.Fatalf("expected the longest name, got %q", got.Name)
	}
}

func TestMergeFillsGenderWhenUnknown(t *testing.T) {
	set := NewMergedSet()
	set.Add(Team{ID: "x", Name: "Alpha"})
	set.Add(Team{ID: "x", Name: "Alpha", Gender: gender.Women})

	got, _ := set.Get("x")
	if got.Gender != gender.Women {
		t.Fatalf("expected gender filled in, got %q", got.Gender)
	}
}
