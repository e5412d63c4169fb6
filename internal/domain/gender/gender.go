// Package gender classifies the gender of teams and matches from the mixed
// Danish/English labels that appear in tournament spreadsheets.
package gender

import (
	"strings"

	"github.com/floorballportalen/turnering/internal/platform/textnorm"
)

// Gender is the canonical classification. The zero value means unknown and
// is carried through the pipeline as-is; nothing downstream guesses.
type Gender string

const (
	Unknown Gender = ""
	Men     Gender = "MEN"
	Women   Gender = "WOMEN"
)

var (
	menTokens   = []string{"maend", "mand", "herre", "male"}
	womenTokens = []string{"kvinde", "dame", "female"}
)

// Normalize maps an explicit gender label to Men, Women or Unknown. Women
// tokens are checked before men tokens because "female" contains "male".
func Normalize(raw string) Gender {
	v := textnorm.Fold(strings.TrimSpace(raw))
	if v == "" {
		return Unknown
	}

	switch v {
	case "women", "w", "k":
		return Women
	case "men", "m":
		return Men
	}
	for _, token := range womenTokens {
		if strings.Contains(v, token) {
			return Women
		}
	}
	for _, token := range menTokens {
		if strings.Contains(v, token) {
			return Men
		}
	}

	return Unknown
}

var (
	menHints   = []string{"herre", "mand", "maend", "men", "male", "boys", "drenge"}
	womenHints = []string{"dame", "kvinde", "pige", "women", "female", "girls"}
)

// Hint scans free text such as league or pool names for gender markers.
// Text matching both sets, or neither, yields Unknown.
func Hint(text string) Gender {
	t := textnorm.Fold(text)
	if t == "" {
		return Unknown
	}

	womenHit := containsAny(t, womenHints)
	menHit := containsAny(t, menHints)
	switch {
	case womenHit && !menHit:
		return Women
	case menHit && !womenHit:
		return Men
	default:
		return Unknown
	}
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
