package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/floorballportalen/turnering/internal/domain/staging"
	"github.com/floorballportalen/turnering/internal/platform/id"
)

const defaultImportListLimit = 20

// ImportService stores uploaded spreadsheet snapshots and serves them back
// for review before a publish.
type ImportService struct {
	stagingRepo staging.Repository
	idGen       id.Generator
	now         func() time.Time
}

func NewImportService(stagingRepo staging.Repository, idGen id.Generator) *ImportService {
	return &ImportService{
		stagingRepo: stagingRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

// StoreImport cleans and stores one snapshot of the three sheets. Rows are
// kept verbatim apart from whitespace trimming; empty cells and empty rows
// are dropped. A snapshot with no rows at all is rejected.
func (s *ImportService) StoreImport(ctx context.Context, filename string, kampe, holdliste, klubliste []staging.Row) (staging.Import, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.StoreImport")
	defer span.End()

	imp := staging.Import{
		Filename:  strings.TrimSpace(filename),
		Kampe:     cleanRows(kampe),
		Holdliste: cleanRows(holdliste),
		Klubliste: cleanRows(klubliste),
	}
	if len(imp.Kampe) == 0 && len(imp.Holdliste) == 0 && len(imp.Klubliste) == 0 {
		return staging.Import{}, fmt.Errorf("%w: no rows in any sheet", ErrInvalidInput)
	}

	importID, err := s.idGen.NewID()
	if err != nil {
		return staging.Import{}, fmt.Errorf("generate import id: %w", err)
	}
	imp.ID = importID
	imp.CreatedAt = s.now().UTC()

	if err := s.stagingRepo.Save(ctx, imp); err != nil {
		return staging.Import{}, fmt.Errorf("save staged import: %w", err)
	}
	return imp, nil
}

// LatestImport returns the most recently stored snapshot.
func (s *ImportService) LatestImport(ctx context.Context) (staging.Import, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.LatestImport")
	defer span.End()

	imp, exists, err := s.stagingRepo.Latest(ctx)
	if err != nil {
		return staging.Import{}, fmt.Errorf("load latest staged import: %w", err)
	}
	if !exists {
		return staging.Import{}, fmt.Errorf("%w: no staged imports", ErrNotFound)
	}
	return imp, nil
}

// ListImports returns snapshot summaries, newest first.
func (s *ImportService) ListImports(ctx context.Context, limit int) ([]staging.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ListImports")
	defer span.End()

	if limit <= 0 {
		limit = defaultImportListLimit
	}

	items, err := s.stagingRepo.ListSummaries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list staged imports: %w", err)
	}
	return items, nil
}

func cleanRows(rows []staging.Row) []staging.Row {
	out := make([]staging.Row, 0, len(rows))
	for _, row := range rows {
		cleaned := make(staging.Row, len(row))
		for key, value := range row {
			key = strings.TrimSpace(key)
			if key == "" || value == nil {
				continue
			}
			if text, ok := value.(string); ok {
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
				value = text
			}
			cleaned[key] = value
		}
		if len(cleaned) == 0 {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
