package database

import (
	"block-notes/models"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ==================== BLOCK OPERATIONS ====================

const blockColumns = `b.id, b.note_id, b.type, b.position, b.data, b.created_at, b.updated_at`

// GetBlocksByNote retrieves a note's blocks ordered by position
func (r *Repository) GetBlocksByNote(ctx context.Context, noteID string) ([]models.Block, error) {
	rows, err := r.query(ctx, `
		SELECT `+blockColumns+`
		FROM blocks b
		WHERE b.note_id = ?
		ORDER BY b.position ASC, b.created_at ASC
	`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	blocks := make([]models.Block, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

// GetBlocksByUser retrieves every block of every note the user owns,
// grouped by note id and ordered by position within each note
func (r *Repository) GetBlocksByUser(ctx context.Context, userID string) (map[string][]models.Block, error) {
	rows, err := r.query(ctx, `
		SELECT `+blockColumns+`
		FROM blocks b
		JOIN notes n ON n.id = b.note_id
		WHERE n.user_id = ?
		ORDER BY b.note_id, b.position ASC, b.created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user blocks: %w", err)
	}
	defer rows.Close()

	byNote := make(map[string][]models.Block)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		byNote[block.NoteID] = append(byNote[block.NoteID], block)
	}

	return byNote, rows.Err()
}

// GetBlock retrieves a block whose parent note is owned by userID.
// It returns nil when either the block or the ownership is missing.
func (r *Repository) GetBlock(ctx context.Context, userID, blockID string) (*models.Block, error) {
	block, err := scanBlock(r.queryRow(ctx, `
		SELECT `+blockColumns+`
		FROM blocks b
		JOIN notes n ON n.id = b.note_id
		WHERE b.id = ? AND n.user_id = ?
	`, blockID, userID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &block, nil
}

// CreateBlock inserts a block, assigning its id and timestamps.
// A nil payload is stored as an empty object.
func (r *Repository) CreateBlock(ctx context.Context, block *models.Block) error {
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if block.Data == nil {
		block.Data = models.Payload{}
	}
	now := r.now()
	block.CreatedAt = now
	block.UpdatedAt = now

	_, err := r.exec(ctx, `
		INSERT INTO blocks (id, note_id, type, position, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		block.ID, block.NoteID, string(block.Type), block.Position, block.Data,
		block.CreatedAt, block.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

// UpdateBlockData replaces a block's payload and bumps its updated_at
func (r *Repository) UpdateBlockData(ctx context.Context, block *models.Block) error {
	if block.Data == nil {
		block.Data = models.Payload{}
	}
	block.UpdatedAt = r.now()

	_, err := r.exec(ctx, `
		UPDATE blocks SET
			data = ?,
			updated_at = ?
		WHERE id = ?
	`, block.Data, block.UpdatedAt, block.ID)
	if err != nil {
		return fmt.Errorf("update block: %w", err)
	}
	return nil
}

// DeleteBlock removes a block and reports whether a row was deleted
func (r *Repository) DeleteBlock(ctx context.Context, blockID string) (bool, error) {
	res, err := r.exec(ctx, "DELETE FROM blocks WHERE id = ?", blockID)
	if err != nil {
		return false, fmt.Errorf("delete block: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete block: %w", err)
	}
	return n > 0, nil
}

func scanBlock(row rowScanner) (models.Block, error) {
	var block models.Block
	var blockType string
	err := row.Scan(
		&block.ID, &block.NoteID, &blockType, &block.Position, &block.Data,
		&block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("scan block: %w", err)
		}
		return block, err
	}
	block.Type = models.BlockType(blockType)
	return block, nil
}
