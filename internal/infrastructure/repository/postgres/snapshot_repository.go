package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
	qb "github.com/floorballportalen/turnering/internal/platform/querybuilder"
)

const insertBatchSize = 500

// SnapshotRepository swaps the published clubs, teams and matches in one
// transaction. Readers either see the old snapshot or the new one.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) ReplaceSnapshot(ctx context.Context, clubs []club.Club, teams []team.Team, matches []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx replace snapshot")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"matches", "teams", "clubs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return crerr.Wrapf(err, "clear %s", table)
		}
	}

	if err := insertClubs(ctx, tx, clubs); err != nil {
		return err
	}
	if err := insertTeams(ctx, tx, teams); err != nil {
		return err
	}
	if err := insertMatches(ctx, tx, matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit replace snapshot tx")
	}
	return nil
}

func insertClubs(ctx context.Context, tx *sqlx.Tx, clubs []club.Club) error {
	for start := 0; start < len(clubs); start += insertBatchSize {
		batch := clubs[start:min(start+insertBatchSize, len(clubs))]

		builder := qb.InsertInto("clubs").Columns("id", "club_no", "name")
		for _, c := range batch {
			builder.Values(c.ID, nullableString(c.ClubNo), c.Name)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert clubs query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert clubs: %w", err)
		}
	}
	return nil
}

func insertTeams(ctx context.Context, tx *sqlx.Tx, teams []team.Team) error {
	for start := 0; start < len(teams); start += insertBatchSize {
		batch := teams[start:min(start+insertBatchSize, len(teams))]

		builder := qb.InsertInto("teams").
			Columns("id", "club_id", "league", "name", "hold_id", "gender", "season_start_year")
		for _, t := range batch {
			builder.Values(
				t.ID,
				t.ClubID,
				t.League,
				t.Name,
				nullableString(t.HoldID),
				nullableString(string(t.Gender)),
				t.SeasonStartYear,
			)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert teams: %w", err)
		}
	}
	return nil
}

func insertMatches(ctx context.Context, tx *sqlx.Tx, matches []match.Match) error {
	for start := 0; start < len(matches); start += insertBatchSize {
		batch := matches[start:min(start+insertBatchSize, len(matches))]

		builder := qb.InsertInto("matches").Columns(matchColumns...)
		for _, m := range batch {
			builder.Values(
				m.ID,
				nullableString(m.ExternalID),
				m.Date,
				nullableString(m.Time),
				nullableString(m.Venue),
				nullableString(m.Result),
				nullableString(m.Referee1),
				nullableString(m.Referee1ID),
				nullableString(m.Referee2),
				nullableString(m.Referee2ID),
				nullableString(string(m.Gender)),
				nullableString(m.League),
				nullableString(m.Stage),
				nullableString(m.Pool),
				m.HomeTeam,
				nullableString(m.HomeHoldID),
				m.AwayTeam,
				nullableString(m.AwayHoldID),
			)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
	}
	return nil
}
