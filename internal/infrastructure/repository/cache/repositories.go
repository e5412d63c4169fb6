// Package cache decorates the published read repositories with an
// in-process TTL cache. Every key carries the "published:" prefix so one
// snapshot replace invalidates all cached reads at once.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
	basecache "github.com/floorballportalen/turnering/internal/platform/cache"
)

const publishedPrefix = "published:"

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, publishedPrefix+"club:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByClubAndLeague(ctx context.Context, clubID, league string) ([]team.Team, error) {
	key := publishedPrefix + "team:club:" + clubID + ":league:" + strings.ToLower(league)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByClubAndLeague(ctx, clubID, league)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByHoldID(ctx context.Context, league, holdID string) (team.Team, bool, error) {
	key := publishedPrefix + "team:hold:" + strings.ToLower(league) + ":" + strings.ToLower(holdID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByHoldID(ctx, league, holdID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByHoldID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByHoldID)
	return cached.value, cached.exists, nil
}

type cachedTeamByHoldID struct {
	value  team.Team
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context, f match.Filter) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, matchFilterKey(f), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, f)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) ListByHoldIDs(ctx context.Context, league string, holdIDs []string) ([]match.Match, error) {
	ids := append([]string(nil), holdIDs...)
	sort.Strings(ids)
	key := publishedPrefix + "match:holds:" + strings.ToLower(league) + ":" + strings.Join(ids, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByHoldIDs(ctx, league, holdIDs)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func matchFilterKey(f match.Filter) string {
	genderPart := "-"
	if f.GenderSet {
		genderPart = string(f.Gender)
	}
	return publishedPrefix + "match:list:" +
		strings.ToLower(f.League) + ":" +
		strings.ToLower(f.Pool) + ":" +
		genderPart + ":" +
		strings.ToLower(f.HoldID)
}

type snapshotWriter interface {
	ReplaceSnapshot(ctx context.Context, clubs []club.Club, teams []team.Team, matches []match.Match) error
}

// SnapshotWriter invalidates every cached published read after a snapshot
// replace.
type SnapshotWriter struct {
	next  snapshotWriter
	cache *basecache.Store
}

func NewSnapshotWriter(next snapshotWriter, cache *basecache.Store) *SnapshotWriter {
	return &SnapshotWriter{next: next, cache: cache}
}

func (w *SnapshotWriter) ReplaceSnapshot(ctx context.Context, clubs []club.Club, teams []team.Team, matches []match.Match) error {
	if err := w.next.ReplaceSnapshot(ctx, clubs, teams, matches); err != nil {
		return err
	}
	w.cache.DeletePrefix(ctx, publishedPrefix)
	return nil
}
