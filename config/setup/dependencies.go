package setup

import (
	"block-notes/app"
	"block-notes/config"
	"block-notes/database"
	"context"
	"log/slog"
)

// InitDatabase opens the configured database, waits for it to answer and
// creates the schema
func InitDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	if err := db.WaitReady(ctx, cfg.ConnectAttempts, logger); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "dialect", string(db.Dialect()))
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, db *database.DB, logger *slog.Logger) *app.App {
	repo := database.NewRepository(db)

	application := app.New(cfg, repo, logger)
	logger.Info("application initialized", "dev_user_id", cfg.DevUserID)

	return application
}

// Shutdown releases resources held by the application
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
