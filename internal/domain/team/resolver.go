package team

import (
	"strings"

	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/league"
	"github.com/floorballportalen/turnering/internal/platform/textnorm"
)

// Resolver links a match side (league, gender, free-text team name) to a
// hold-id. Four indexes are tried from strictest to loosest; a key that maps
// to more than one hold-id is ambiguous and never resolves.
type Resolver struct {
	aliases *league.Aliases

	byLeagueGenderName  map[string]string
	byLeagueName        map[string]string
	byLeagueGenderLoose map[string]string
	byLeagueLoose       map[string]string
}

// NewResolver indexes the merged teams. Teams without a league, a usable
// name key or a hold-id cannot be resolution targets and are skipped.
// Teams without a known gender only enter the gender-free indexes, and an
// empty loose key never enters the loose ones.
func NewResolver(aliases *league.Aliases, teams []Team) *Resolver {
	strict := make(map[string]map[string]struct{})
	named := make(map[string]map[string]struct{})
	strictLoose := make(map[string]map[string]struct{})
	loose := make(map[string]map[string]struct{})

	for _, t := range teams {
		leagueName := strings.TrimSpace(t.League)
		nameKey := textnorm.CanonicalKey(t.Name)
		holdID := strings.TrimSpace(t.HoldID)
		if leagueName == "" || nameKey == "" || holdID == "" {
			continue
		}
		looseKey := textnorm.LooseTeamKey(t.Name)

		for _, alias := range aliases.Equivalent(leagueName) {
			lk := leagueKey(alias)
			if t.Gender != gender.Unknown {
				addCandidate(strict, lk+"|"+string(t.Gender)+"|"+nameKey, holdID)
			}
			addCandidate(named, lk+"|"+nameKey, holdID)
			if looseKey != "" {
				if t.Gender != gender.Unknown {
					addCandidate(strictLoose, lk+"|"+string(t.Gender)+"|"+looseKey, holdID)
				}
				addCandidate(loose, lk+"|"+looseKey, holdID)
			}
		}
	}

	return &Resolver{
		aliases:             aliases,
		byLeagueGenderName:  unambiguous(strict),
		byLeagueName:        unambiguous(named),
		byLeagueGenderLoose: unambiguous(strictLoose),
		byLeagueLoose:       unambiguous(loose),
	}
}

// Resolve returns the hold-id for a match side, or "" when no index holds an
// unambiguous answer. Every spelling of the league is tried before giving up.
// Without a gender the gendered indexes are skipped, and without a loose key
// the loose ones are; a miss stays a miss rather than a guess.
func (r *Resolver) Resolve(leagueName string, g gender.Gender, teamName string) string {
	nameKey := textnorm.CanonicalKey(teamName)
	if nameKey == "" {
		return ""
	}
	looseKey := textnorm.LooseTeamKey(teamName)

	for _, alias := range r.aliases.Equivalent(leagueName) {
		lk := leagueKey(alias)
		if g != gender.Unknown {
			if id, ok := r.byLeagueGenderName[lk+"|"+string(g)+"|"+nameKey]; ok {
				return id
			}
		}
		if id, ok := r.byLeagueName[lk+"|"+nameKey]; ok {
			return id
		}
		if looseKey == "" {
			continue
		}
		if g != gender.Unknown {
			if id, ok := r.byLeagueGenderLoose[lk+"|"+string(g)+"|"+looseKey]; ok {
				return id
			}
		}
		if id, ok := r.byLeagueLoose[lk+"|"+looseKey]; ok {
			return id
		}
	}
	return ""
}

func addCandidate(index map[string]map[string]struct{}, key, holdID string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[holdID] = struct{}{}
}

func unambiguous(index map[string]map[string]struct{}) map[string]string {
	out := make(map[string]string, len(index))
	for key, set := range index {
		if len(set) != 1 {
			continue
		}
		for holdID := range set {
			out[key] = holdID
		}
	}
	return out
}

func leagueKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GenderIndex infers the gender of a match from the genders its side names
// carry in the team sheet. Sheets usually omit gender on the match rows, but
// the team list names the division.
type GenderIndex struct {
	aliases *league.Aliases
	genders map[string]map[gender.Gender]struct{}
}

func NewGenderIndex(aliases *league.Aliases) *GenderIndex {
	return &GenderIndex{
		aliases: aliases,
		genders: make(map[string]map[gender.Gender]struct{}),
	}
}

// Add records that teamName plays as g in leagueName. Entries without a
// league, a name or a known gender carry no signal and are dropped.
func (x *GenderIndex) Add(leagueName, teamName string, g gender.Gender) {
	nameKey := textnorm.CanonicalKey(teamName)
	if strings.TrimSpace(leagueName) == "" || nameKey == "" || g == gender.Unknown {
		return
	}
	for _, alias := range x.aliases.Equivalent(leagueName) {
		key := leagueKey(alias) + "|" + nameKey
		set, ok := x.genders[key]
		if !ok {
			set = make(map[gender.Gender]struct{})
			x.genders[key] = set
		}
		set[g] = struct{}{}
	}
}

// Lookup returns the gender teamName plays as in leagueName, or Unknown when
// the sheet is silent or contradicts itself.
func (x *GenderIndex) Lookup(leagueName, teamName string) gender.Gender {
	nameKey := textnorm.CanonicalKey(teamName)
	if nameKey == "" {
		return gender.Unknown
	}
	set, ok := x.genders[leagueKey(leagueName)+"|"+nameKey]
	if !ok || len(set) != 1 {
		return gender.Unknown
	}
	for g := range set {
		return g
	}
	return gender.Unknown
}

// PairGender infers a match gender from both side names. The sides must
// agree; a split verdict yields Unknown.
func (x *GenderIndex) PairGender(leagueName, homeTeam, awayTeam string) gender.Gender {
	candidates := make(map[gender.Gender]struct{}, 2)
	if g := x.Lookup(leagueName, homeTeam); g != gender.Unknown {
		candidates[g] = struct{}{}
	}
	if g := x.Lookup(leagueName, awayTeam); g != gender.Unknown {
		candidates[g] = struct{}{}
	}
	if len(candidates) != 1 {
		return gender.Unknown
	}
	for g := range candidates {
		return g
	}
	return gender.Unknown
}
