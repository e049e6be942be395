package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	"docanalyzer/internal/ai"
	appsvc "docanalyzer/internal/app"
	"docanalyzer/internal/config"
	"docanalyzer/internal/extract"
	"docanalyzer/internal/filestore"
	"docanalyzer/internal/ingest"
	"docanalyzer/internal/model"
	sqliteClient "docanalyzer/internal/platform/sqlite"
)

type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	DB        *gorm.DB
	Store     *filestore.Store
	Ingestor  *ingest.Ingestor
	Generator appsvc.Generator

	gemini *ai.GeminiClient

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sqliteClient.New(ctx, cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.Document{},
		&model.DocumentContent{},
		&model.AnalysisSession{},
		&model.Query{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	store, err := filestore.New(cfg.Storage.UploadDir, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := extract.NewDispatcher(store, extract.Options{
		MaxRowsPerSheet: cfg.Ingest.MaxRowsPerSheet,
		PDFImagePageCap: cfg.Ingest.PDFImagePageCap,
	}, logger)

	ingestor, err := ingest.New(db, store, dispatcher, cfg.Ingest.PoolSize, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Store:     store,
		Ingestor:  ingestor,
		StartedAt: time.Now(),
	}

	if cfg.LLM.APIKey == "" {
		logger.Warn("gemini api key not set, query endpoints will be unavailable")
		return app, nil
	}
	gemini, err := ai.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	app.gemini = gemini
	app.Generator = gemini

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Ingestor != nil {
		a.Ingestor.Close()
	}
	if a.gemini != nil {
		if err := a.gemini.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
