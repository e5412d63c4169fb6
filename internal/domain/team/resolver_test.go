package team

import (
	"testing"

	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/league"
)

func TestResolveExactName(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Select Ligaen", Name: "Alpha Floorball", HoldID: "H1", Gender: gender.Men},
	})

	if got := r.Resolve("Select Ligaen", gender.Men, "Alpha Floorball"); got != "H1" {
		t.Fatalf("got %q", got)
	}
	// Casing and punctuation differences share a canonical key.
	if got := r.Resolve("Select Ligaen", gender.Men, "  ALPHA-floorball "); got != "H1" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveIgnoresGenderWhenNameIsUnique(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Select Ligaen", Name: "Alpha", HoldID: "H1", Gender: gender.Men},
	})

	if got := r.Resolve("Select Ligaen", gender.Women, "Alpha"); got != "H1" {
		t.Fatalf("expected the name-only index to answer, got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Alpha"); got != "H1" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveLooseKeyDropsClubForms(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "1. Division", Name: "København Floorball Klub", HoldID: "H7"},
	})

	if got := r.Resolve("1. Division", gender.Unknown, "København FC"); got != "H7" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveAmbiguousNameNeedsGender(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Select Ligaen", Name: "Alpha", HoldID: "H1", Gender: gender.Men},
		{League: "Select Ligaen", Name: "Alpha", HoldID: "H2", Gender: gender.Women},
	})

	if got := r.Resolve("Select Ligaen", gender.Men, "Alpha"); got != "H1" {
		t.Fatalf("got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Women, "Alpha"); got != "H2" {
		t.Fatalf("got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Alpha"); got != "" {
		t.Fatalf("ambiguous side must not resolve, got %q", got)
	}
}

func TestResolveGenderlessTeamNeverAnswersGenderedIndexes(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Select Ligaen", Name: "Alpha", HoldID: "H1", Gender: gender.Men},
		{League: "Select Ligaen", Name: "Alpha", HoldID: "H2", Gender: gender.Unknown},
	})

	// Two teams share the name, so a gender-less query is ambiguous. The
	// gender-less team must not sit in a gendered index where it would be
	// the only candidate.
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Alpha"); got != "" {
		t.Fatalf("ambiguous side must not resolve, got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Men, "Alpha"); got != "H1" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveSkipsLooseMatchingForAllStopWordNames(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Select Ligaen", Name: "Floorball Club", HoldID: "H1"},
	})

	// Both names reduce to an empty loose key; that must not make them
	// loose-equal.
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Floorball Klub"); got != "" {
		t.Fatalf("empty loose keys must not match each other, got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Floorball Club"); got != "H1" {
		t.Fatalf("exact name must still resolve, got %q", got)
	}
}

func TestResolveAcrossLeagueSpellings(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "Unihoc Floorball Liga", Name: "Alpha", HoldID: "H1"},
	})

	if got := r.Resolve("Select Ligaen", gender.Unknown, "Alpha"); got != "H1" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveSkipsUnusableTeams(t *testing.T) {
	r := NewResolver(league.DefaultAliases(), []Team{
		{League: "", Name: "Alpha", HoldID: "H1"},
		{League: "Select Ligaen", Name: "", HoldID: "H2"},
		{League: "Select Ligaen", Name: "Beta", HoldID: ""},
	})

	if got := r.Resolve("Select Ligaen", gender.Unknown, "Alpha"); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := r.Resolve("Select Ligaen", gender.Unknown, "Beta"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestGenderIndexPairAgreement(t *testing.T) {
	x := NewGenderIndex(league.DefaultAliases())
	x.Add("Select Ligaen", "Alpha", gender.Men)
	x.Add("Select Ligaen", "Beta", gender.Men)
	x.Add("Select Ligaen", "Gamma", gender.Women)

	if got := x.PairGender("Select Ligaen", "Alpha", "Beta"); got != gender.Men {
		t.Fatalf("got %q", got)
	}
	// One silent side is fine; the other decides.
	if got := x.PairGender("Select Ligaen", "Alpha", "Ukendt"); got != gender.Men {
		t.Fatalf("got %q", got)
	}
	// Split verdicts never guess.
	if got := x.PairGender("Select Ligaen", "Alpha", "Gamma"); got != gender.Unknown {
		t.Fatalf("got %q", got)
	}
}

func TestGenderIndexContradictionIsUnknown(t *testing.T) {
	x := NewGenderIndex(league.DefaultAliases())
	x.Add("Select Ligaen", "Alpha", gender.Men)
	x.Add("Select Ligaen", "Alpha", gender.Women)

	if got := x.Lookup("Select Ligaen", "Alpha"); got != gender.Unknown {
		t.Fatalf("got %q", got)
	}
}

func TestGenderIndexFollowsLeagueSpellings(t *testing.T) {
	x := NewGenderIndex(league.DefaultAliases())
	x.Add("Unihoc Floorball Liga", "Alpha", gender.Women)

	if got := x.Lookup("Select Ligaen", "Alpha"); got != gender.Women {
		t.Fatalf("got %q", got)
	}
}
