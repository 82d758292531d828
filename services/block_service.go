package services

import (
	"block-notes/models"
	"context"
	"math"
)

// CreateBlock attaches a new block to one of the user's notes.
// A nil payload is stored as an empty object.
func (ns *NoteService) CreateBlock(ctx context.Context, userID, noteID string, blockType models.BlockType, position int, data models.Payload) (*models.Block, error) {
	if !blockType.Valid() {
		return nil, ErrInvalidBlockType
	}
	if position < 0 || position > math.MaxInt32 {
		return nil, ErrInvalidPosition
	}
	if data == nil {
		data = models.Payload{}
	}

	block := &models.Block{
		NoteID:   noteID,
		Type:     blockType,
		Position: position,
		Data:     data,
	}

	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		note, err := ns.repo.GetNote(ctx, userID, noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return ErrNoteNotFound
		}

		return ns.repo.CreateBlock(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	ns.logger.DebugContext(ctx, "block created",
		"user_id", userID,
		"note_id", noteID,
		"block_id", block.ID,
		"type", string(blockType),
	)
	return block, nil
}

// UpdateBlock replaces a block's payload wholesale. The block must belong
// to a note owned by the user.
func (ns *NoteService) UpdateBlock(ctx context.Context, userID, blockID string, data models.Payload) (*models.Block, error) {
	var block *models.Block

	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		block, err = ns.repo.GetBlock(ctx, userID, blockID)
		if err != nil {
			return err
		}
		if block == nil {
			return ErrBlockNotFound
		}

		block.Data = data
		return ns.repo.UpdateBlockData(ctx, block)
	})
	if err != nil {
		return nil, err
	}

	ns.logger.DebugContext(ctx, "block updated", "user_id", userID, "block_id", blockID)
	return block, nil
}

// DeleteBlock removes a block from a note owned by the user
func (ns *NoteService) DeleteBlock(ctx context.Context, userID, blockID string) error {
	err := ns.repo.RunInTx(ctx, func(ctx context.Context) error {
		block, err := ns.repo.GetBlock(ctx, userID, blockID)
		if err != nil {
			return err
		}
		if block == nil {
			return ErrBlockNotFound
		}

		deleted, err := ns.repo.DeleteBlock(ctx, blockID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrBlockNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	ns.logger.DebugContext(ctx, "block deleted", "user_id", userID, "block_id", blockID)
	return nil
}
