package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/team"
	qb "github.com/floorballportalen/turnering/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID              string  `db:"id"`
	ClubID          string  `db:"club_id"`
	League          string  `db:"league"`
	Name            string  `db:"name"`
	HoldID          *string `db:"hold_id"`
	Gender          *string `db:"gender"`
	SeasonStartYear int     `db:"season_start_year"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByClubAndLeague(ctx context.Context, clubID, league string) ([]team.Team, error) {
	query, args, err := qb.Select("id", "club_id", "league", "name", "hold_id", "gender", "season_start_year").
		From("teams").
		Where(
			qb.Eq("club_id", clubID),
			qb.Expr("LOWER(league) = LOWER($?)", league),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by club query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by club and league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByHoldID(ctx context.Context, league, holdID string) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "club_id", "league", "name", "hold_id", "gender", "season_start_year").
		From("teams").
		Where(
			qb.Expr("LOWER(league) = LOWER($?)", league),
			qb.Expr("LOWER(hold_id) = LOWER($?)", holdID),
		).
		OrderBy("season_start_year DESC", "id").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by hold id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by hold id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:              row.ID,
		ClubID:          row.ClubID,
		League:          row.League,
		Name:            row.Name,
		HoldID:          fromNullable(row.HoldID),
		Gender:          gender.Gender(fromNullable(row.Gender)),
		SeasonStartYear: row.SeasonStartYear,
	}
}
