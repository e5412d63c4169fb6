package gender

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
	}{
		{"Herrer", Men},
		{"herre", Men},
		{"M", Men},
		{"men", Men},
		{"Mænd", Men},
		{"male", Men},
		{"Damer", Women},
		{"Kvinder", Women},
		{"K", Women},
		{"W", Women},
		{"women", Women},
		{"female", Women},
		{"", Unknown},
		{"   ", Unknown},
		{"mixed", Unknown},
		{"U17", Unknown},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHint(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
	}{
		{"Unihoc Floorball Liga Damer", Women},
		{"1. division herrer pulje A", Men},
		{"Pigeliga øst", Women},
		{"Drengeliga vest", Men},
		{"Pulje 3", Unknown},
		{"", Unknown},
		// Both markers present: refuse to guess.
		{"Herre- og dameliga", Unknown},
	}

	for _, tc := range cases {
		if got := Hint(tc.in); got != tc.want {
			t.Fatalf("Hint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
