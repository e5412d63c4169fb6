package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/floorballportalen/turnering/internal/domain/club"
	qb "github.com/floorballportalen/turnering/internal/platform/querybuilder"
)

type clubTableModel struct {
	ID     string  `db:"id"`
	ClubNo *string `db:"club_no"`
	Name   string  `db:"name"`
}

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("id", "club_no", "name").From("clubs").
		OrderBy("club_no NULLS LAST", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.Club{
			ID:     row.ID,
			ClubNo: fromNullable(row.ClubNo),
			Name:   row.Name,
		})
	}
	return out, nil
}
