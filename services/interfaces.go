package services

import (
	"block-notes/models"
	"context"
)

// NoteRepository defines the interface for note and block data access
type NoteRepository interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error

	ListNotesByUser(ctx context.Context, userID string) ([]models.Note, error)
	GetNote(ctx context.Context, userID, noteID string) (*models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, userID, noteID string) (bool, error)

	GetBlocksByNote(ctx context.Context, noteID string) ([]models.Block, error)
	GetBlocksByUser(ctx context.Context, userID string) (map[string][]models.Block, error)
	GetBlock(ctx context.Context, userID, blockID string) (*models.Block, error)
	CreateBlock(ctx context.Context, block *models.Block) error
	UpdateBlockData(ctx context.Context, block *models.Block) error
	DeleteBlock(ctx context.Context, blockID string) (bool, error)
}
