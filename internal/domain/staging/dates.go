package staging

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel serial 25569 is 1970-01-01 (serial epoch 1899-12-30).
const excelUnixEpochSerial = 25569

var (
	danishDateRe = regexp.MustCompile(`^\s*(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\s*$`)
	clockRe      = regexp.MustCompile(`^\s*(\d{1,2})\s*[:.]\s*(\d{2})(?:\s*[:.]\s*(\d{2}))?\s*$`)
	yearRunRe    = regexp.MustCompile(`(\d{4})`)
)

// ParseDateCell turns a raw spreadsheet cell into a UTC calendar date.
// Accepts time values, Excel serial numbers, ISO strings and the Danish
// dd-mm-yyyy family. Returns nil when the cell is not a date.
func ParseDateCell(v any) *time.Time {
	switch value := v.(type) {
	case time.Time:
		return datePtr(value.UTC())
	case float64:
		return excelSerialToDate(value)
	case float32:
		return excelSerialToDate(float64(value))
	case int:
		return excelSerialToDate(float64(value))
	case int64:
		return excelSerialToDate(float64(value))
	case string:
		return parseDateString(value)
	default:
		return nil
	}
}

func parseDateString(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if parsed, err := time.Parse(layout, v); err == nil {
			return datePtr(parsed.UTC())
		}
	}

	m := danishDateRe.FindStringSubmatch(v)
	if m == nil {
		return nil
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year == 0 {
		return nil
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func excelSerialToDate(serial float64) *time.Time {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return nil
	}
	seconds := math.Round((serial - excelUnixEpochSerial) * 86400)
	return datePtr(time.Unix(int64(seconds), 0).UTC())
}

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseTimeCell turns a raw cell into a kickoff time anchored on
// 1970-01-01 UTC plus its "hh:mm" rendering. Numeric cells are Excel
// fraction-of-day values rounded to the nearest minute. Returns nil when
// the cell holds no parseable time.
func ParseTimeCell(v any) (*time.Time, string) {
	switch value := v.(type) {
	case time.Time:
		return clockTime(value.Hour(), value.Minute())
	case float64:
		return fractionOfDay(value)
	case float32:
		return fractionOfDay(float64(value))
	case string:
		return parseTimeString(value)
	default:
		return nil, ""
	}
}

func parseTimeString(value string) (*time.Time, string) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return nil, ""
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return nil, ""
	}
	return clockTime(hh, mm)
}

func fractionOfDay(v float64) (*time.Time, string) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ""
	}
	totalMinutes := int(math.Round(v * 24 * 60))
	hh := (totalMinutes / 60) % 24
	mm := totalMinutes % 60
	if hh < 0 || mm < 0 {
		return nil, ""
	}
	return clockTime(hh, mm)
}

func clockTime(hh, mm int) (*time.Time, string) {
	t := time.Date(1970, time.January, 1, hh, mm, 0, 0, time.UTC)
	return &t, fmt.Sprintf("%02d:%02d", hh, mm)
}

// FormatDateDa renders a date the way Danish match programs print it.
func FormatDateDa(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.UTC().Format("02-01-2006")
}

// SeasonStartYear extracts the first four-digit run from a season label
// ("2025/2026" → 2025). Returns 0 when no plausible year is present.
func SeasonStartYear(raw string) int {
	m := yearRunRe.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1900 || year > 3000 {
		return 0
	}
	return year
}
