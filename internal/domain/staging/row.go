package staging

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one spreadsheet row keyed by its original column headers. Headers
// vary between exports ("KlubID", "Klub Id", "Klubnr", ...), so values are
// looked up through alias lists with substring fallbacks instead of fixed
// column names.
type Row map[string]any

// First returns the first non-empty value whose header matches one of the
// aliases exactly (case-insensitive, trimmed). Alias order is the
// precedence order.
func (r Row) First(aliases ...string) string {
	for _, alias := range aliases {
		want := strings.ToLower(strings.TrimSpace(alias))
		for _, key := range r.sortedKeys() {
			if strings.ToLower(strings.TrimSpace(key)) != want {
				continue
			}
			if s := CellString(r[key]); s != "" {
				return s
			}
		}
	}
	return ""
}

// FirstContains returns the first non-empty value whose lowercased header
// contains needle. Headers are scanned in sorted order so the fallback is
// deterministic regardless of map layout.
func (r Row) FirstContains(needle string) string {
	n := strings.ToLower(needle)
	for _, key := range r.sortedKeys() {
		if !strings.Contains(strings.ToLower(key), n) {
			continue
		}
		if s := CellString(r[key]); s != "" {
			return s
		}
	}
	return ""
}

// FirstMatch returns the first non-empty value whose lowercased header
// satisfies pred.
func (r Row) FirstMatch(pred func(keyLower string) bool) string {
	for _, key := range r.sortedKeys() {
		if !pred(strings.ToLower(key)) {
			continue
		}
		if s := CellString(r[key]); s != "" {
			return s
		}
	}
	return ""
}

// Cell returns the raw cell value for the first matching header: exact
// aliases first, then substring needles. Date and time columns need the raw
// value because Excel serials must not be stringified before parsing.
func (r Row) Cell(aliases []string, needles ...string) any {
	for _, alias := range aliases {
		want := strings.ToLower(strings.TrimSpace(alias))
		for _, key := range r.sortedKeys() {
			if strings.ToLower(strings.TrimSpace(key)) == want {
				return r[key]
			}
		}
	}
	for _, needle := range needles {
		n := strings.ToLower(needle)
		for _, key := range r.sortedKeys() {
			if strings.Contains(strings.ToLower(key), n) {
				return r[key]
			}
		}
	}
	return nil
}

func (r Row) sortedKeys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CellString renders a cell value for text fields. Numbers drop trailing
// zero decimals so a numeric club id reads "101", not "101.000000".
func CellString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
