package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/league"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
)

// TournamentService reads the published snapshot. League filters follow the
// alias classes, so a query for either top-flight spelling sees both.
type TournamentService struct {
	clubRepo  club.Repository
	teamRepo  team.Repository
	matchRepo match.Repository
	aliases   *league.Aliases
}

func NewTournamentService(
	clubRepo club.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	aliases *league.Aliases,
) *TournamentService {
	if aliases == nil {
		aliases = league.DefaultAliases()
	}
	return &TournamentService{
		clubRepo:  clubRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		aliases:   aliases,
	}
}

func (s *TournamentService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListClubs")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return items, nil
}

// ListTeamsForClub returns a club's teams in a league, folded to one entry
// per hold-id. The display name follows the side name of the team's newest
// match when one exists; season sheets abbreviate, the match program does
// not. genderSet distinguishes no filter from filtering on unknown gender.
func (s *TournamentService) ListTeamsForClub(ctx context.Context, clubID, leagueName string, g gender.Gender, genderSet bool) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTeamsForClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	leagueName = strings.TrimSpace(leagueName)
	if clubID == "" {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if leagueName == "" {
		return nil, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}

	var combined []team.Team
	for _, alias := range s.aliases.Equivalent(leagueName) {
		items, err := s.teamRepo.ListByClubAndLeague(ctx, clubID, alias)
		if err != nil {
			return nil, fmt.Errorf("list teams by club and league: %w", err)
		}
		combined = append(combined, items...)
	}

	folded := foldTeamsByHoldID(combined, g, genderSet)
	if err := s.applyMatchProgramNames(ctx, leagueName, folded); err != nil {
		return nil, err
	}

	sort.SliceStable(folded, func(i, j int) bool {
		if folded[i].Name != folded[j].Name {
			return folded[i].Name < folded[j].Name
		}
		return folded[i].ID < folded[j].ID
	})
	return folded, nil
}

// ListMatches returns published matches for a filter, ordered by date, time
// and id. A league filter is expanded to every spelling of the competition.
func (s *TournamentService) ListMatches(ctx context.Context, f match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListMatches")
	defer span.End()

	var combined []match.Match
	if strings.TrimSpace(f.League) == "" {
		items, err := s.matchRepo.List(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		combined = items
	} else {
		seen := make(map[string]struct{})
		for _, alias := range s.aliases.Equivalent(f.League) {
			aliasFilter := f
			aliasFilter.League = alias
			items, err := s.matchRepo.List(ctx, aliasFilter)
			if err != nil {
				return nil, fmt.Errorf("list matches: %w", err)
			}
			for _, m := range items {
				if _, ok := seen[m.ID]; ok {
					continue
				}
				seen[m.ID] = struct{}{}
				combined = append(combined, m)
			}
		}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return matchBefore(combined[i], combined[j])
	})
	return combined, nil
}

// TeamByHoldID returns one team and its full match program.
func (s *TournamentService) TeamByHoldID(ctx context.Context, leagueName, holdID string) (team.Team, []match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.TeamByHoldID")
	defer span.End()

	leagueName = strings.TrimSpace(leagueName)
	holdID = strings.TrimSpace(holdID)
	if leagueName == "" {
		return team.Team{}, nil, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}
	if holdID == "" {
		return team.Team{}, nil, fmt.Errorf("%w: hold id is required", ErrInvalidInput)
	}

	var (
		found team.Team
		ok    bool
	)
	for _, alias := range s.aliases.Equivalent(leagueName) {
		item, exists, err := s.teamRepo.GetByHoldID(ctx, alias, holdID)
		if err != nil {
			return team.Team{}, nil, fmt.Errorf("get team by hold id: %w", err)
		}
		if exists {
			found = item
			ok = true
			break
		}
	}
	if !ok {
		return team.Team{}, nil, fmt.Errorf("%w: hold=%s league=%s", ErrNotFound, holdID, leagueName)
	}

	matches, err := s.matchesByHoldIDs(ctx, leagueName, []string{holdID})
	if err != nil {
		return team.Team{}, nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matchBefore(matches[i], matches[j])
	})
	return found, matches, nil
}

// foldTeamsByHoldID collapses season variants of the same hold-id. Teams
// without a hold-id keep their own identity.
func foldTeamsByHoldID(items []team.Team, g gender.Gender, genderSet bool) []team.Team {
	merged := team.NewMergedSet()
	for _, t := range items {
		if genderSet && t.Gender != g {
			continue
		}
		folded := t
		if folded.HoldID != "" {
			folded.ID = "hold:" + strings.ToLower(folded.HoldID)
		}
		merged.Add(folded)
	}

	out := merged.Teams()
	for i := range out {
		if strings.HasPrefix(out[i].ID, "hold:") {
			out[i].ID = ""
		}
	}
	return out
}

// applyMatchProgramNames renames folded teams after the side name used in
// their newest match.
func (s *TournamentService) applyMatchProgramNames(ctx context.Context, leagueName string, folded []team.Team) error {
	holdIDs := make([]string, 0, len(folded))
	for _, t := range folded {
		if t.HoldID != "" {
			holdIDs = append(holdIDs, t.HoldID)
		}
	}
	if len(holdIDs) == 0 {
		return nil
	}

	matches, err := s.matchesByHoldIDs(ctx, leagueName, holdIDs)
	if err != nil {
		return err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matchBefore(matches[j], matches[i])
	})

	for i := range folded {
		if folded[i].HoldID == "" {
			continue
		}
		for _, m := range matches {
			if m.HomeHoldID == folded[i].HoldID && m.HomeTeam != "" {
				folded[i].Name = m.HomeTeam
				break
			}
			if m.AwayHoldID == folded[i].HoldID && m.AwayTeam != "" {
				folded[i].Name = m.AwayTeam
				break
			}
		}
	}
	return nil
}

func (s *TournamentService) matchesByHoldIDs(ctx context.Context, leagueName string, holdIDs []string) ([]match.Match, error) {
	var (
		combined []match.Match
		seen     = make(map[string]struct{})
	)
	for _, alias := range s.aliases.Equivalent(leagueName) {
		items, err := s.matchRepo.ListByHoldIDs(ctx, alias, holdIDs)
		if err != nil {
			return nil, fmt.Errorf("list matches by hold ids: %w", err)
		}
		for _, m := range items {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			combined = append(combined, m)
		}
	}
	return combined, nil
}

// matchBefore orders matches by date, kickoff time and id. Undated matches
// sort last.
func matchBefore(a, b match.Match) bool {
	switch {
	case a.Date == nil && b.Date != nil:
		return false
	case a.Date != nil && b.Date == nil:
		return true
	case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
		return a.Date.Before(*b.Date)
	}
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.ID < b.ID
}
