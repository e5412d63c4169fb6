// Package textnorm reduces Danish sports text to comparison keys. Club and
// team names arrive from spreadsheets with inconsistent casing, punctuation
// and diacritics; the keys produced here are what the identity and resolver
// layers hash and index on.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, expands the Danish letters to their ASCII digraphs
// (ae, oe, aa) and strips combining diacritics.
func Fold(s string) string {
	lower := strings.ToLower(s)

	var expanded strings.Builder
	expanded.Grow(len(lower))
	for _, r := range lower {
		switch r {
		case 'æ':
			expanded.WriteString("ae")
		case 'ø':
			expanded.WriteString("oe")
		case 'å':
			expanded.WriteString("aa")
		default:
			expanded.WriteRune(r)
		}
	}

	decomposed := norm.NFD.String(expanded.String())
	var out strings.Builder
	out.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out.WriteRune(r)
	}

	return out.String()
}

// CanonicalKey folds s and collapses every run of non-alphanumeric
// characters into a single space. The result is trimmed, so two names that
// differ only in punctuation, spacing or diacritics share a key.
// CanonicalKey is idempotent.
func CanonicalKey(s string) string {
	folded := Fold(strings.TrimSpace(s))

	var out strings.Builder
	out.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && out.Len() > 0 {
				out.WriteRune(' ')
			}
			pendingSpace = false
			out.WriteRune(r)
			continue
		}
		pendingSpace = true
	}

	return out.String()
}

// Tokens like "Floorball Club" or the ubiquitous "IF"/"FC" suffixes carry no
// identity; dropping them lets "Koebenhavn FC" match "Koebenhavn Floorball".
var looseStopWords = map[string]struct{}{
	"fc":        {},
	"if":        {},
	"ff":        {},
	"ft":        {},
	"fk":        {},
	"floorball": {},
	"club":      {},
	"klub":      {},
}

// LooseTeamKey is CanonicalKey with club-form stop words removed. A name
// made of nothing but stop words yields "", which tells callers to skip
// loose matching for it entirely.
func LooseTeamKey(s string) string {
	key := CanonicalKey(s)
	if key == "" {
		return ""
	}

	tokens := strings.Fields(key)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := looseStopWords[token]; ok {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}
