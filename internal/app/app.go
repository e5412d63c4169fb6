// Package app wires configuration, storage and HTTP transport together.
package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/floorballportalen/turnering/internal/config"
	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
	cacherepo "github.com/floorballportalen/turnering/internal/infrastructure/repository/cache"
	"github.com/floorballportalen/turnering/internal/infrastructure/repository/postgres"
	"github.com/floorballportalen/turnering/internal/interfaces/httpapi"
	basecache "github.com/floorballportalen/turnering/internal/platform/cache"
	idgen "github.com/floorballportalen/turnering/internal/platform/id"
	"github.com/floorballportalen/turnering/internal/platform/logging"
	"github.com/floorballportalen/turnering/internal/usecase"
)

// App holds the built server and the resources that need closing on
// shutdown.
type App struct {
	Server *http.Server
	closer func() error
}

func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer()
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	stagingRepo := postgres.NewStagingRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)

	var (
		clubRepo  club.Repository  = postgres.NewClubRepository(db)
		teamRepo  team.Repository  = postgres.NewTeamRepository(db)
		matchRepo match.Repository = postgres.NewMatchRepository(db)
	)

	publishService := usecase.NewPublishService(stagingRepo, snapshotRepo, nil)
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		clubRepo = cacherepo.NewClubRepository(clubRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
		// Publishes go through the invalidating writer so cached reads
		// never outlive a snapshot swap.
		publishService = usecase.NewPublishService(stagingRepo, cacherepo.NewSnapshotWriter(snapshotRepo, store), nil)
	}

	importService := usecase.NewImportService(stagingRepo, idgen.NewRandomGenerator())
	tournamentService := usecase.NewTournamentService(clubRepo, teamRepo, matchRepo, nil)

	handler := httpapi.NewHandler(importService, publishService, tournamentService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server: server,
		closer: db.Close,
	}, nil
}
