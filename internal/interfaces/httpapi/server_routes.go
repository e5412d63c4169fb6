package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/turnering/import", handler.ImportWorkbook)
	mux.HandleFunc("POST /api/turnering/import-rows", handler.ImportRows)
	mux.HandleFunc("GET /api/turnering/imports", handler.ListImports)
	mux.HandleFunc("GET /api/turnering/latest-import", handler.LatestImport)
	mux.HandleFunc("POST /api/turnering/publish-latest", handler.PublishLatest)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/turnering/clubs", handler.ListClubs)
	mux.HandleFunc("GET /api/turnering/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/turnering/kampprogram", handler.ListMatches)
	mux.HandleFunc("GET /api/turnering/hold/{holdID}", handler.GetTeamByHoldID)
}
