package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/documents"
	"ats-backend/internal/scoring"
	"ats-backend/internal/services/health"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/shared/storage/object"
	localstore "ats-backend/internal/shared/storage/object/local"
	s3store "ats-backend/internal/shared/storage/object/s3"
)

const dbConnectMaxElapsed = 30 * time.Second

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Engine           *scoring.Engine
	DocumentsRepo    documents.DocumentsRepo
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	Health           *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.DatabaseDriver) == "" {
		cfg.DatabaseDriver = db.DriverPostgres
	}
	ctx := context.Background()

	engine, err := BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Engine: engine,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysisHandler,
		Health:          app.Health,
		Limiter:         middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildEngine resolves the scoring configuration: preset, then the optional
// YAML overlay, then the MIN_DESCRIPTION_LENGTH override.
func BuildEngine(cfg config.Config) (*scoring.Engine, error) {
	scoringCfg, err := scoring.Preset(cfg.ScoringPreset)
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(cfg.ScoringConfigFile); path != "" {
		scoringCfg, err = scoring.LoadFile(path, scoringCfg)
		if err != nil {
			return nil, err
		}
	}
	if cfg.MinDescriptionLength > 0 {
		scoringCfg.MinDescriptionLength = cfg.MinDescriptionLength
	}
	engine, err := scoring.New(scoringCfg)
	if err != nil {
		return nil, fmt.Errorf("build scoring engine: %w", err)
	}
	log.Printf("bootstrap: scoring preset=%s minDescriptionLength=%d sections=%d keywords=%d",
		scoringCfg.Preset, scoringCfg.MinDescriptionLength, len(scoringCfg.Sections), len(scoringCfg.BaseKeywords))
	return engine, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.ConnectWithRetry(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, opts, dbConnectMaxElapsed)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB, cfg.DatabaseDriver); err != nil {
		closeDB(sqlDB)
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var docRepo documents.DocumentsRepo
	if app.DB != nil {
		docRepo = &documents.SQLRepo{DB: app.DB, Driver: app.Config.DatabaseDriver}
	} else {
		docRepo = documents.NewMemoryRepo()
	}
	app.DocumentsRepo = docRepo

	app.DocumentsService = &documents.Service{Store: app.Store, Repo: docRepo}
	app.AnalysesService = analyses.NewService(app.Engine, app.DocumentsService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, app.Engine, app.Config.MaxUploadBytes())
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = docRepo
	}
	app.Health = health.NewService(pinger, app.Engine.Config().Preset)
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
