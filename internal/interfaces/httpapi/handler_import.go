package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"

	"github.com/floorballportalen/turnering/internal/domain/staging"
	"github.com/floorballportalen/turnering/internal/usecase"
)

const (
	sheetKampprogram = "Kampprogram"
	sheetHoldliste   = "Holdliste"
	sheetKlubliste   = "Klubliste"

	maxWorkbookBytes = 32 << 20
	previewRowCount  = 20
)

// ImportWorkbook stages an uploaded Excel workbook. Cells are read raw so
// date and time columns keep their serial numbers for the publish parser.
func (h *Handler) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportWorkbook")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxWorkbookBytes)
	if err := r.ParseMultipartForm(maxWorkbookBytes); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: file field is required", usecase.ErrInvalidInput))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: cannot read Excel workbook: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() {
		_ = workbook.Close()
	}()

	imp, err := h.importService.StoreImport(ctx, header.Filename,
		sheetRows(workbook, sheetKampprogram),
		sheetRows(workbook, sheetHoldliste),
		sheetRows(workbook, sheetKlubliste),
	)
	if err != nil {
		h.logger.WarnContext(ctx, "store workbook import failed", "filename", header.Filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stagedImportToDTO(ctx, imp, true))
}

// ImportRows stages rows posted as JSON, for clients that parse the
// workbook themselves.
func (h *Handler) ImportRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRows")
	defer span.End()

	var req importRowsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	imp, err := h.importService.StoreImport(ctx, req.Filename, req.Kampe, req.Holdliste, req.Klubliste)
	if err != nil {
		h.logger.WarnContext(ctx, "store row import failed", "filename", req.Filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, stagedImportToDTO(ctx, imp, true))
}

func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListImports")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	summaries, err := h.importService.ListImports(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list imports failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]importSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, importSummaryToDTO(ctx, s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) LatestImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LatestImport")
	defer span.End()

	imp, err := h.importService.LatestImport(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "load latest import failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stagedImportToDTO(ctx, imp, false))
}

func (h *Handler) PublishLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishLatest")
	defer span.End()

	result, err := h.publishService.PublishLatest(ctx)
	if err != nil {
		var verr *staging.ValidationError
		if errors.As(err, &verr) {
			err = fmt.Errorf("%w: Kan ikke uploade til databasen pga. fejl i Kampprogram:\n%s",
				usecase.ErrInvalidInput, verr.Error())
		}
		h.logger.WarnContext(ctx, "publish latest import failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishResultDTO{
		ImportID: result.ImportID,
		Clubs:    result.Clubs,
		Teams:    result.Teams,
		Matches:  result.Matches,
		Resolution: resolutionSummaryDTO{
			MatchesTotal: result.Resolution.MatchesTotal,
			HomeResolved: result.Resolution.HomeResolved,
			AwayResolved: result.Resolution.AwayResolved,
			BothResolved: result.Resolution.BothResolved,
			AnyResolved:  result.Resolution.AnyResolved,
		},
	})
}

// sheetRows reads one sheet into header-keyed rows. A missing sheet yields
// no rows; the import service decides whether the workbook is usable.
func sheetRows(workbook *excelize.File, sheet string) []staging.Row {
	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil || len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	out := make([]staging.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(staging.Row, len(headers))
		for i, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" || i >= len(cells) {
				continue
			}
			if value := cellValue(cells[i]); value != nil {
				row[header] = value
			}
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out
}

// cellValue keeps numeric cells numeric. Excel stores dates and times as
// serials; parsing them here would need the workbook's style table, so the
// raw number is handed to the staging parser instead.
func cellValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
		return parsed
	}
	return raw
}

type importRowsRequest struct {
	Filename  string        `json:"filename" validate:"omitempty,max=255"`
	Kampe     []staging.Row `json:"kampe"`
	Holdliste []staging.Row `json:"holdliste"`
	Klubliste []staging.Row `json:"klubliste"`
}

type importSummaryDTO struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Filename  string `json:"filename"`
	Kampe     int    `json:"kampe"`
	Holdliste int    `json:"holdliste"`
	Klubliste int    `json:"klubliste"`
}

type stagedImportDTO struct {
	ID        string        `json:"id"`
	CreatedAt string        `json:"createdAt"`
	Filename  string        `json:"filename"`
	Kampe     int           `json:"kampe"`
	Holdliste int           `json:"holdliste"`
	Klubliste int           `json:"klubliste"`
	Preview   []staging.Row `json:"preview,omitempty"`
	Rows      *importRows   `json:"rows,omitempty"`
}

type importRows struct {
	Kampe     []staging.Row `json:"kampe"`
	Holdliste []staging.Row `json:"holdliste"`
	Klubliste []staging.Row `json:"klubliste"`
}

type publishResultDTO struct {
	ImportID   string               `json:"importId"`
	Clubs      int                  `json:"clubs"`
	Teams      int                  `json:"teams"`
	Matches    int                  `json:"matches"`
	Resolution resolutionSummaryDTO `json:"resolution"`
}

type resolutionSummaryDTO struct {
	MatchesTotal int `json:"matchesTotal"`
	HomeResolved int `json:"homeResolved"`
	AwayResolved int `json:"awayResolved"`
	BothResolved int `json:"bothResolved"`
	AnyResolved  int `json:"anyResolved"`
}

func importSummaryToDTO(ctx context.Context, s staging.Summary) importSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.importSummaryToDTO")
	defer span.End()

	return importSummaryDTO{
		ID:        s.ID,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		Filename:  s.Filename,
		Kampe:     s.Kampe,
		Holdliste: s.Holdliste,
		Klubliste: s.Klubliste,
	}
}

// stagedImportToDTO renders an import either with a short Kampprogram
// preview (right after upload) or with the full rows (review screen).
func stagedImportToDTO(ctx context.Context, imp staging.Import, previewOnly bool) stagedImportDTO {
	ctx, span := startSpan(ctx, "httpapi.stagedImportToDTO")
	defer span.End()

	dto := stagedImportDTO{
		ID:        imp.ID,
		CreatedAt: imp.CreatedAt.UTC().Format(time.RFC3339),
		Filename:  imp.Filename,
		Kampe:     len(imp.Kampe),
		Holdliste: len(imp.Holdliste),
		Klubliste: len(imp.Klubliste),
	}
	if previewOnly {
		preview := imp.Kampe
		if len(preview) > previewRowCount {
			preview = preview[:previewRowCount]
		}
		dto.Preview = preview
		return dto
	}

	dto.Rows = &importRows{
		Kampe:     imp.Kampe,
		Holdliste: imp.Holdliste,
		Klubliste: imp.Klubliste,
	}
	return dto
}
