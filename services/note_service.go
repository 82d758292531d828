package services

import (
	"block-notes/models"
	"context"
	"log/slog"
)

// NoteService handles the note and block lifecycle. Every method takes the
// caller's identity explicitly and runs as one transaction.
type NoteService struct {
	repo   NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the user's notes, newest first, each with its blocks
// ordered by position
func (ns *NoteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	var notes []models.Note

	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		notes, err = ns.repo.ListNotesByUser(ctx, userID)
		if err != nil {
			return err
		}

		blocksByNote, err := ns.repo.GetBlocksByUser(ctx, userID)
		if err != nil {
			return err
		}

		for i := range notes {
			notes[i].Blocks = blocksByNote[notes[i].ID]
			if notes[i].Blocks == nil {
				notes[i].Blocks = make([]models.Block, 0)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Create creates a note owned by userID together with its default empty
// text block at position 0
func (ns *NoteService) Create(ctx context.Context, userID, title string) (*models.Note, error) {
	note := &models.Note{
		UserID: userID,
		Title:  title,
	}

	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		if err := ns.repo.CreateNote(ctx, note); err != nil {
			return err
		}

		block := &models.Block{
			NoteID:   note.ID,
			Type:     models.BlockTypeText,
			Position: 0,
			Data:     models.Payload{},
		}
		if err := ns.repo.CreateBlock(ctx, block); err != nil {
			return err
		}

		note.Blocks = []models.Block{*block}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ns.logger.DebugContext(ctx, "note created", "user_id", userID, "note_id", note.ID)
	return note, nil
}

// Get retrieves one of the user's notes with its blocks
func (ns *NoteService) Get(ctx context.Context, userID, noteID string) (*models.Note, error) {
	var note *models.Note

	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		note, err = ns.repo.GetNote(ctx, userID, noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return ErrNoteNotFound
		}

		note.Blocks, err = ns.repo.GetBlocksByNote(ctx, note.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes one of the user's notes and, by cascade, its blocks
func (ns *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		deleted, err := ns.repo.DeleteNote(ctx, userID, noteID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrNoteNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	ns.logger.DebugContext(ctx, "note deleted", "user_id", userID, "note_id", noteID)
	return nil
}
