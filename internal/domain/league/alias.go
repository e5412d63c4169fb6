// Package league handles league naming concerns. The top Danish floorball
// league has been renamed mid-history, and a season's spreadsheets may use
// either spelling, so lookups must treat the spellings as one competition.
package league

import "strings"

// Aliases holds symmetric equivalence classes of league names.
type Aliases struct {
	classByKey map[string][]string
}

// NewAliases builds an alias set from equivalence classes. Every spelling in
// a class resolves to the full class; names that appear in no class form a
// singleton class of themselves.
func NewAliases(classes ...[]string) *Aliases {
	a := &Aliases{classByKey: make(map[string][]string)}
	for _, class := range classes {
		cleaned := make([]string, 0, len(class))
		for _, name := range class {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			cleaned = append(cleaned, name)
		}
		if len(cleaned) < 2 {
			continue
		}
		for _, name := range cleaned {
			a.classByKey[aliasKey(name)] = cleaned
		}
	}
	return a
}

// DefaultAliases carries the known top-flight rename.
func DefaultAliases() *Aliases {
	return NewAliases([]string{"Unihoc Floorball Liga", "Select Ligaen"})
}

// Equivalent returns every spelling that refers to the same competition as
// name, with the queried spelling first. Unknown names return themselves.
func (a *Aliases) Equivalent(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	class, ok := a.classByKey[aliasKey(trimmed)]
	if !ok {
		return []string{trimmed}
	}

	out := make([]string, 0, len(class))
	out = append(out, trimmed)
	for _, sibling := range class {
		if !strings.EqualFold(sibling, trimmed) {
			out = append(out, sibling)
		}
	}
	return out
}

func aliasKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
