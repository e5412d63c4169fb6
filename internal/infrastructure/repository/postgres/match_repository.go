package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/match"
	qb "github.com/floorballportalen/turnering/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID         string     `db:"id"`
	ExternalID *string    `db:"external_id"`
	MatchDate  *time.Time `db:"match_date"`
	Kickoff    *string    `db:"kickoff"`
	Venue      *string    `db:"venue"`
	Result     *string    `db:"result"`
	Referee1   *string    `db:"referee1"`
	Referee1ID *string    `db:"referee1_id"`
	Referee2   *string    `db:"referee2"`
	Referee2ID *string    `db:"referee2_id"`
	Gender     *string    `db:"gender"`
	League     *string    `db:"league"`
	Stage      *string    `db:"stage"`
	Pool       *string    `db:"pool"`
	HomeTeam   string     `db:"home_team"`
	HomeHoldID *string    `db:"home_hold_id"`
	AwayTeam   string     `db:"away_team"`
	AwayHoldID *string    `db:"away_hold_id"`
}

var matchColumns = []string{
	"id", "external_id", "match_date", "kickoff", "venue", "result",
	"referee1", "referee1_id", "referee2", "referee2_id",
	"gender", "league", "stage", "pool",
	"home_team", "home_hold_id", "away_team", "away_hold_id",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, f match.Filter) ([]match.Match, error) {
	var conditions []qb.Condition
	if f.League != "" {
		conditions = append(conditions, qb.Expr("LOWER(league) = LOWER($?)", f.League))
	}
	if f.Pool != "" {
		conditions = append(conditions, qb.Expr("LOWER(pool) = LOWER($?)", f.Pool))
	}
	if f.GenderSet {
		if f.Gender == gender.Unknown {
			conditions = append(conditions, qb.IsNull("gender"))
		} else {
			conditions = append(conditions, qb.Eq("gender", string(f.Gender)))
		}
	}
	if f.HoldID != "" {
		conditions = append(conditions, qb.Expr("(home_hold_id = $? OR away_hold_id = $?)", f.HoldID, f.HoldID))
	}

	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(conditions...).
		OrderBy("match_date NULLS LAST", "kickoff NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	return matchesFromRows(rows), nil
}

func (r *MatchRepository) ListByHoldIDs(ctx context.Context, league string, holdIDs []string) ([]match.Match, error) {
	if len(holdIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(
			qb.Expr("LOWER(league) = LOWER($?)", league),
			qb.Expr("(home_hold_id = ANY($?) OR away_hold_id = ANY($?))", pq.Array(holdIDs), pq.Array(holdIDs)),
		).
		OrderBy("match_date DESC NULLS LAST", "kickoff DESC NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by hold ids query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by hold ids: %w", err)
	}
	return matchesFromRows(rows), nil
}

func matchesFromRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:         row.ID,
			ExternalID: fromNullable(row.ExternalID),
			Date:       row.MatchDate,
			Time:       fromNullable(row.Kickoff),
			Venue:      fromNullable(row.Venue),
			Result:     fromNullable(row.Result),
			Referee1:   fromNullable(row.Referee1),
			Referee1ID: fromNullable(row.Referee1ID),
			Referee2:   fromNullable(row.Referee2),
			Referee2ID: fromNullable(row.Referee2ID),
			Gender:     gender.Gender(fromNullable(row.Gender)),
			League:     fromNullable(row.League),
			Stage:      fromNullable(row.Stage),
			Pool:       fromNullable(row.Pool),
			HomeTeam:   row.HomeTeam,
			HomeHoldID: fromNullable(row.HomeHoldID),
			AwayTeam:   row.AwayTeam,
			AwayHoldID: fromNullable(row.AwayHoldID),
		})
	}
	return out
}
