package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/identity"
	"github.com/floorballportalen/turnering/internal/domain/league"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/staging"
	"github.com/floorballportalen/turnering/internal/domain/team"
)

const normalizeWorkerCount = 3

type snapshotWriter interface {
	// ReplaceSnapshot atomically swaps the published clubs, teams and
	// matches for the given records.
	ReplaceSnapshot(ctx context.Context, clubs []club.Club, teams []team.Team, matches []match.Match) error
}

// ResolutionSummary counts how many published matches got their sides linked
// to hold-ids.
type ResolutionSummary struct {
	MatchesTotal int
	HomeResolved int
	AwayResolved int
	BothResolved int
	AnyResolved  int
}

// PublishResult reports what a publish wrote.
type PublishResult struct {
	ImportID   string
	Clubs      int
	Teams      int
	Matches    int
	Resolution ResolutionSummary
}

// PublishService turns the latest staged import into the published snapshot:
// normalize the sheets, assign stable ids, merge team candidates, resolve
// match sides and replace the published tables in one transaction.
type PublishService struct {
	stagingRepo staging.Repository
	snapshots   snapshotWriter
	aliases     *league.Aliases
}

func NewPublishService(stagingRepo staging.Repository, snapshots snapshotWriter, aliases *league.Aliases) *PublishService {
	if aliases == nil {
		aliases = league.DefaultAliases()
	}
	return &PublishService{
		stagingRepo: stagingRepo,
		snapshots:   snapshots,
		aliases:     aliases,
	}
}

// PublishLatest publishes the most recent staged import. Publishing the same
// import twice yields byte-identical snapshots; stable ids make the swap
// invisible to references held by callers.
func (s *PublishService) PublishLatest(ctx context.Context) (PublishResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublishService.PublishLatest")
	defer span.End()

	imp, exists, err := s.stagingRepo.Latest(ctx)
	if err != nil {
		return PublishResult{}, fmt.Errorf("load latest staged import: %w", err)
	}
	if !exists {
		return PublishResult{}, fmt.Errorf("%w: no staged import to publish", ErrNotFound)
	}

	stagedClubs, stagedTeams, stagedMatches, err := normalizeSheets(imp)
	if err != nil {
		return PublishResult{}, err
	}

	if verr := staging.ValidateMatches(stagedMatches); verr != nil {
		return PublishResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, verr)
	}

	clubs, clubIDByKey := buildClubs(stagedClubs, stagedTeams)

	merged := team.NewMergedSet()
	genderIndex := team.NewGenderIndex(s.aliases)
	for _, t := range stagedTeams {
		clubKey := identity.ClubKey(t.ClubNo, t.ClubName)
		teamKey := identity.TeamKey(t.HoldID, clubKey, t.League, t.TeamName)
		merged.Add(team.Team{
			ID:              identity.StableID("team", teamKey),
			ClubID:          clubIDByKey[clubKey],
			League:          t.League,
			Name:            t.TeamName,
			HoldID:          t.HoldID,
			Gender:          t.Gender,
			SeasonStartYear: staging.SeasonStartYear(t.Season),
		})
		genderIndex.Add(t.League, t.TeamName, t.Gender)
	}
	teams := merged.Teams()

	resolver := team.NewResolver(s.aliases, teams)
	matches := s.buildMatches(stagedMatches, resolver, genderIndex)

	if err := s.snapshots.ReplaceSnapshot(ctx, clubs, teams, matches); err != nil {
		return PublishResult{}, fmt.Errorf("replace published snapshot: %w", err)
	}

	return PublishResult{
		ImportID:   imp.ID,
		Clubs:      len(clubs),
		Teams:      len(teams),
		Matches:    len(matches),
		Resolution: summarizeResolution(matches),
	}, nil
}

// normalizeSheets runs the three sheet normalizers on a small worker pool.
// The sheets are independent and Kampprogram dominates the row count.
func normalizeSheets(imp staging.Import) ([]staging.Club, []staging.Team, []staging.Match, error) {
	pool, err := ants.NewPool(normalizeWorkerCount)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers       sync.WaitGroup
		stagedClubs   []staging.Club
		stagedTeams   []staging.Team
		stagedMatches []staging.Match
	)
	tasks := []func(){
		func() { stagedClubs = staging.NormalizeClubs(imp.Klubliste) },
		func() { stagedTeams = staging.NormalizeTeams(imp.Holdliste) },
		func() { stagedMatches = staging.NormalizeMatches(imp.Kampe) },
	}
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			task()
		}); err != nil {
			workers.Done()
			return nil, nil, nil, fmt.Errorf("submit normalize task: %w", err)
		}
	}
	workers.Wait()

	return stagedClubs, stagedTeams, stagedMatches, nil
}

// buildClubs assigns stable ids to the Klubliste clubs and backfills clubs
// that only appear as team owners in the Holdliste sheet.
func buildClubs(stagedClubs []staging.Club, stagedTeams []staging.Team) ([]club.Club, map[string]string) {
	out := make([]club.Club, 0, len(stagedClubs))
	idByKey := make(map[string]string, len(stagedClubs))

	add := func(clubNo, name string) {
		key := identity.ClubKey(clubNo, name)
		if _, ok := idByKey[key]; ok {
			return
		}
		if name == "" {
			name = clubNo
		}
		record := club.Club{
			ID:     identity.StableID("club", key),
			ClubNo: strings.TrimSpace(clubNo),
			Name:   strings.TrimSpace(name),
		}
		idByKey[key] = record.ID
		out = append(out, record)
	}

	for _, c := range stagedClubs {
		add(c.ClubNo, c.Name)
	}
	for _, t := range stagedTeams {
		add(t.ClubNo, t.ClubName)
	}
	return out, idByKey
}

// buildMatches assigns stable ids and resolves each side to a hold-id. A
// later row with the same identity replaces the earlier one in place, so
// corrected re-exports win without reordering the sheet.
func (s *PublishService) buildMatches(stagedMatches []staging.Match, resolver *team.Resolver, genderIndex *team.GenderIndex) []match.Match {
	out := make([]match.Match, 0, len(stagedMatches))
	indexByID := make(map[string]int, len(stagedMatches))

	for _, m := range stagedMatches {
		g := m.Gender
		if g == gender.Unknown {
			g = genderIndex.PairGender(m.League, m.HomeTeam, m.AwayTeam)
		}
		if g == gender.Unknown {
			g = gender.Hint(m.League + " " + m.Pool)
		}

		isoDate := ""
		if m.Date != nil {
			isoDate = m.Date.Format("2006-01-02")
		}
		key := identity.MatchKey(m.ExternalID, isoDate, m.TimeText, m.HomeTeam, m.AwayTeam, m.League)

		referee1, referee1ID := refereePair(m.Referee1, m.Referee1ID)
		referee2, referee2ID := refereePair(m.Referee2, m.Referee2ID)

		record := match.Match{
			ID:         identity.StableID("match", key),
			ExternalID: m.ExternalID,
			Date:       m.Date,
			Time:       m.TimeText,
			Venue:      m.Venue,
			Result:     m.Result,
			Referee1:   referee1,
			Referee1ID: referee1ID,
			Referee2:   referee2,
			Referee2ID: referee2ID,
			Gender:     g,
			League:     m.League,
			Stage:      m.Stage,
			Pool:       m.Pool,
			HomeTeam:   m.HomeTeam,
			HomeHoldID: resolver.Resolve(m.League, g, m.HomeTeam),
			AwayTeam:   m.AwayTeam,
			AwayHoldID: resolver.Resolve(m.League, g, m.AwayTeam),
		}

		if idx, ok := indexByID[record.ID]; ok {
			out[idx] = record
			continue
		}
		indexByID[record.ID] = len(out)
		out = append(out, record)
	}
	return out
}

// refereePair keeps a referee assignment only when both the name and the id
// are present. Half-filled pairs cannot be linked to the referee registry.
func refereePair(name, refID string) (string, string) {
	name = strings.TrimSpace(name)
	refID = strings.TrimSpace(refID)
	if name == "" || refID == "" {
		return "", ""
	}
	return name, refID
}

func summarizeResolution(matches []match.Match) ResolutionSummary {
	summary := ResolutionSummary{MatchesTotal: len(matches)}
	for _, m := range matches {
		home := m.HomeHoldID != ""
		away := m.AwayHoldID != ""
		if home {
			summary.HomeResolved++
		}
		if away {
			summary.AwayResolved++
		}
		if home && away {
			summary.BothResolved++
		}
		if home || away {
			summary.AnyResolved++
		}
	}
	return summary
}
