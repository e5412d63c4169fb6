package identity

import (
	"strings"
	"testing"
)

func TestStableIDShape(t *testing.T) {
	id := StableID("team", "hold:123|league:select ligaen")

	if !strings.HasPrefix(id, "team_") {
		t.Fatalf("expected team_ prefix, got %q", id)
	}
	hexPart := strings.TrimPrefix(id, "team_")
	if len(hexPart) != 32 {
		t.Fatalf("expected 32 hex chars, got %d (%q)", len(hexPart), hexPart)
	}
	for _, r := range hexPart {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("non-hex rune %q in %q", r, id)
		}
	}
}

func TestStableIDDeterministic(t *testing.T) {
	a := StableID("match", "id:42|d:2025-10-01|t:19:30|h:alpha|a:beta|l:liga")
	b := StableID("match", "id:42|d:2025-10-01|t:19:30|h:alpha|a:beta|l:liga")
	if a != b {
		t.Fatalf("same key hashed to different ids: %q vs %q", a, b)
	}

	c := StableID("match", "id:43|d:2025-10-01|t:19:30|h:alpha|a:beta|l:liga")
	if a == c {
		t.Fatal("different keys hashed to the same id")
	}
}

func TestClubKeyPrefersNumber(t *testing.T) {
	if got := ClubKey("101", "Alpha IF"); got != "no:101" {
		t.Fatalf("expected no:101, got %q", got)
	}
	if got := ClubKey("  ", "Alpha IF"); got != "name:alpha if" {
		t.Fatalf("expected name:alpha if, got %q", got)
	}
}

func TestTeamKeyHoldIDWinsOverClub(t *testing.T) {
	withHold := TeamKey("H77", "no:101", "Select Ligaen", "Alpha Herrer")
	if withHold != "hold:h77|league:select ligaen" {
		t.Fatalf("unexpected key %q", withHold)
	}

	withoutHold := TeamKey("", "no:101", "Select Ligaen", "Alpha Herrer")
	if withoutHold != "club:no:101|league:select ligaen|name:alpha herrer" {
		t.Fatalf("unexpected key %q", withoutHold)
	}

	// Rows with and without a hold-id must not collide.
	if withHold == withoutHold {
		t.Fatal("hold and club keys collided")
	}
}

func TestMatchKeyLowercasesEverything(t *testing.T) {
	got := MatchKey("K42", "2025-10-01", "19:30", "Alpha", "Beta", "Select Ligaen")
	want := "id:k42|d:2025-10-01|t:19:30|h:alpha|a:beta|l:select ligaen"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
