package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
)

// PublishedRepository holds one published snapshot. The Clubs, Teams and
// Matches views serve the domain read interfaces over the shared snapshot.
type PublishedRepository struct {
	mu      sync.RWMutex
	clubs   []club.Club
	teams   []team.Team
	matches []match.Match
}

func NewPublishedRepository() *PublishedRepository {
	return &PublishedRepository{}
}

func (r *PublishedRepository) ReplaceSnapshot(_ context.Context, clubs []club.Club, teams []team.Team, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clubs = append([]club.Club(nil), clubs...)
	r.teams = append([]team.Team(nil), teams...)
	r.matches = append([]match.Match(nil), matches...)
	return nil
}

func (r *PublishedRepository) Clubs() club.Repository {
	return clubView{r}
}

func (r *PublishedRepository) Teams() team.Repository {
	return teamView{r}
}

func (r *PublishedRepository) Matches() match.Repository {
	return matchView{r}
}

type clubView struct{ r *PublishedRepository }

func (v clubView) List(context.Context) ([]club.Club, error) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()

	return append([]club.Club(nil), v.r.clubs...), nil
}

type teamView struct{ r *PublishedRepository }

func (v teamView) ListByClubAndLeague(_ context.Context, clubID, league string) ([]team.Team, error) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()

	var out []team.Team
	for _, t := range v.r.teams {
		if t.ClubID == clubID && strings.EqualFold(t.League, league) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (v teamView) GetByHoldID(_ context.Context, league, holdID string) (team.Team, bool, error) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()

	var (
		found team.Team
		ok    bool
	)
	for _, t := range v.r.teams {
		if t.HoldID == "" || !strings.EqualFold(t.League, league) || !strings.EqualFold(t.HoldID, holdID) {
			continue
		}
		if !ok || t.SeasonStartYear > found.SeasonStartYear {
			found = t
			ok = true
		}
	}
	return found, ok, nil
}

type matchView struct{ r *PublishedRepository }

func (v matchView) List(_ context.Context, f match.Filter) ([]match.Match, error) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()

	var out []match.Match
	for _, m := range v.r.matches {
		if f.League != "" && !strings.EqualFold(m.League, f.League) {
			continue
		}
		if f.Pool != "" && !strings.EqualFold(m.Pool, f.Pool) {
			continue
		}
		if f.GenderSet && m.Gender != f.Gender {
			continue
		}
		if f.HoldID != "" && m.HomeHoldID != f.HoldID && m.AwayHoldID != f.HoldID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (v matchView) ListByHoldIDs(_ context.Context, league string, holdIDs []string) ([]match.Match, error) {
	v.r.mu.RLock()
	defer v.r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(holdIDs))
	for _, id := range holdIDs {
		wanted[id] = struct{}{}
	}

	var out []match.Match
	for _, m := range v.r.matches {
		if !strings.EqualFold(m.League, league) {
			continue
		}
		_, home := wanted[m.HomeHoldID]
		_, away := wanted[m.AwayHoldID]
		if home || away {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Date == nil && b.Date != nil:
			return false
		case a.Date != nil && b.Date == nil:
			return true
		case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
			return a.Date.After(*b.Date)
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.ID < b.ID
	})
	return out, nil
}
