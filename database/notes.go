package database

import (
	"block-notes/models"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ==================== NOTE OPERATIONS ====================

// ListNotesByUser returns the user's notes, newest first, without blocks
func (r *Repository) ListNotesByUser(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := r.query(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM notes
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// GetNote retrieves a note owned by userID. It returns nil when the note
// does not exist or belongs to someone else.
func (r *Repository) GetNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	note, err := scanNote(r.queryRow(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM notes
		WHERE id = ? AND user_id = ?
	`, noteID, userID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &note, nil
}

// CreateNote inserts a note, assigning its id and timestamps
func (r *Repository) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := r.now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.exec(ctx, `
		INSERT INTO notes (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.UserID, note.Title, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// DeleteNote removes a note owned by userID; its blocks go with it through
// the foreign key cascade. It reports whether a row was deleted.
func (r *Repository) DeleteNote(ctx context.Context, userID, noteID string) (bool, error) {
	res, err := r.exec(ctx, `
		DELETE FROM notes
		WHERE id = ? AND user_id = ?
	`, noteID, userID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return n > 0, nil
}

func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.CreatedAt, &note.UpdatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return note, fmt.Errorf("scan note: %w", err)
	}
	return note, err
}
