package app

import (
	"block-notes/config"
	"block-notes/database"
	"block-notes/services"
	"block-notes/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config      *config.Config
	Repo        *database.Repository
	NoteService *services.NoteService
	Validator   *validator.Validator
	Logger      *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, repo *database.Repository, logger *slog.Logger) *App {
	return &App{
		Config:      cfg,
		Repo:        repo,
		NoteService: services.NewNoteService(repo, logger),
		Validator:   validator.New(),
		Logger:      logger,
	}
}
