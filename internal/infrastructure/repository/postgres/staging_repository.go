package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/floorballportalen/turnering/internal/domain/staging"
	qb "github.com/floorballportalen/turnering/internal/platform/querybuilder"
)

type stagedImportTableModel struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Filename  *string   `db:"filename"`
	Kampe     []byte    `db:"kampe"`
	Holdliste []byte    `db:"holdliste"`
	Klubliste []byte    `db:"klubliste"`
}

type stagedImportSummaryModel struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Filename  *string   `db:"filename"`
	Kampe     int       `db:"kampe"`
	Holdliste int       `db:"holdliste"`
	Klubliste int       `db:"klubliste"`
}

// StagingRepository stores uploaded snapshots with their rows as JSONB, so a
// publish can always re-read the exact source.
type StagingRepository struct {
	db *sqlx.DB
}

func NewStagingRepository(db *sqlx.DB) *StagingRepository {
	return &StagingRepository{db: db}
}

func (r *StagingRepository) Save(ctx context.Context, imp staging.Import) error {
	kampe, err := marshalRows(imp.Kampe)
	if err != nil {
		return fmt.Errorf("marshal kampe rows: %w", err)
	}
	holdliste, err := marshalRows(imp.Holdliste)
	if err != nil {
		return fmt.Errorf("marshal holdliste rows: %w", err)
	}
	klubliste, err := marshalRows(imp.Klubliste)
	if err != nil {
		return fmt.Errorf("marshal klubliste rows: %w", err)
	}

	query, args, err := qb.InsertModel("staged_imports", stagedImportTableModel{
		ID:        imp.ID,
		CreatedAt: imp.CreatedAt,
		Filename:  nullableString(imp.Filename),
		Kampe:     kampe,
		Holdliste: holdliste,
		Klubliste: klubliste,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert staged import query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert staged import id=%s: %w", imp.ID, err)
	}
	return nil
}

func (r *StagingRepository) Latest(ctx context.Context) (staging.Import, bool, error) {
	query, args, err := qb.Select("id", "created_at", "filename", "kampe", "holdliste", "klubliste").
		From("staged_imports").
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return staging.Import{}, false, fmt.Errorf("build select latest staged import query: %w", err)
	}

	var row stagedImportTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return staging.Import{}, false, nil
		}
		return staging.Import{}, false, fmt.Errorf("select latest staged import: %w", err)
	}

	imp := staging.Import{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Filename:  fromNullable(row.Filename),
	}
	if imp.Kampe, err = unmarshalRows(row.Kampe); err != nil {
		return staging.Import{}, false, fmt.Errorf("unmarshal kampe rows: %w", err)
	}
	if imp.Holdliste, err = unmarshalRows(row.Holdliste); err != nil {
		return staging.Import{}, false, fmt.Errorf("unmarshal holdliste rows: %w", err)
	}
	if imp.Klubliste, err = unmarshalRows(row.Klubliste); err != nil {
		return staging.Import{}, false, fmt.Errorf("unmarshal klubliste rows: %w", err)
	}
	return imp, true, nil
}

func (r *StagingRepository) ListSummaries(ctx context.Context, limit int) ([]staging.Summary, error) {
	query, args, err := qb.Select(
		"id", "created_at", "filename",
		"jsonb_array_length(kampe) AS kampe",
		"jsonb_array_length(holdliste) AS holdliste",
		"jsonb_array_length(klubliste) AS klubliste",
	).
		From("staged_imports").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select staged import summaries query: %w", err)
	}

	var rows []stagedImportSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select staged import summaries: %w", err)
	}

	out := make([]staging.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, staging.Summary{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			Filename:  fromNullable(row.Filename),
			Kampe:     row.Kampe,
			Holdliste: row.Holdliste,
			Klubliste: row.Klubliste,
		})
	}
	return out, nil
}

func marshalRows(rows []staging.Row) ([]byte, error) {
	if rows == nil {
		rows = []staging.Row{}
	}
	return sonic.Marshal(rows)
}

func unmarshalRows(data []byte) ([]staging.Row, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rows []staging.Row
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
