package staging

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateCellExcelSerial(t *testing.T) {
	got := ParseDateCell(float64(45000))
	if got == nil {
		t.Fatal("expected a date")
	}
	if !got.Equal(date(2023, time.March, 15)) {
		t.Fatalf("got %v", got)
	}

	// Serial for the unix epoch itself.
	got = ParseDateCell(float64(25569))
	if got == nil || !got.Equal(date(1970, time.January, 1)) {
		t.Fatalf("got %v", got)
	}
}

func TestParseDateCellDanishFormats(t *testing.T) {
	for _, input := range []string{"15-03-2023", "15/03/2023", "15.03.2023"} {
		got := ParseDateCell(input)
		if got == nil || !got.Equal(date(2023, time.March, 15)) {
			t.Fatalf("ParseDateCell(%q) = %v", input, got)
		}
	}
}

func TestParseDateCellTwoDigitYear(t *testing.T) {
	got := ParseDateCell("05-02-31")
	if got == nil || !got.Equal(date(2031, time.February, 5)) {
		t.Fatalf("got %v", got)
	}
}

func TestParseDateCellISO(t *testing.T) {
	got := ParseDateCell("2025-10-01")
	if got == nil || !got.Equal(date(2025, time.October, 1)) {
		t.Fatalf("got %v", got)
	}

	// Timestamp strings truncate to the calendar date.
	got = ParseDateCell("2025-10-01T18:30:00Z")
	if got == nil || !got.Equal(date(2025, time.October, 1)) {
		t.Fatalf("got %v", got)
	}
}

func TestParseDateCellGarbage(t *testing.T) {
	for _, input := range []any{"", "not a date", "99-99-2025", nil, struct{}{}} {
		if got := ParseDateCell(input); got != nil {
			t.Fatalf("ParseDateCell(%v) = %v, want nil", input, got)
		}
	}
}

func TestParseTimeCellFractionOfDay(t *testing.T) {
	kickoff, text := ParseTimeCell(0.75)
	if kickoff == nil || text != "18:00" {
		t.Fatalf("got %v %q", kickoff, text)
	}
	if kickoff.Hour() != 18 || kickoff.Minute() != 0 {
		t.Fatalf("got %v", kickoff)
	}

	// 19:30 = 0.8125 of a day; rounding must land on the minute.
	_, text = ParseTimeCell(0.8125)
	if text != "19:30" {
		t.Fatalf("got %q", text)
	}
}

func TestParseTimeCellStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"19:30", "19:30"},
		{"9:05", "09:05"},
		{"19.30", "19:30"},
		{"19 : 30 : 00", "19:30"},
	}
	for _, tc := range cases {
		_, text := ParseTimeCell(tc.in)
		if text != tc.want {
			t.Fatalf("ParseTimeCell(%q) = %q, want %q", tc.in, text, tc.want)
		}
	}

	for _, bad := range []string{"", "24:00", "19:60", "kl. 19", "1930"} {
		if kickoff, text := ParseTimeCell(bad); kickoff != nil || text != "" {
			t.Fatalf("ParseTimeCell(%q) = %v %q, want nil", bad, kickoff, text)
		}
	}
}

func TestFormatDateDa(t *testing.T) {
	d := date(2025, time.October, 1)
	if got := FormatDateDa(&d); got != "01-10-2025" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDateDa(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestSeasonStartYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2025/2026", 2025},
		{"Sæson 2024-25", 2024},
		{"25/26", 0},
		{"", 0},
		{"1899", 0},
		{"3001", 0},
		{"1900", 1900},
	}
	for _, tc := range cases {
		if got := SeasonStartYear(tc.in); got != tc.want {
			t.Fatalf("SeasonStartYear(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
