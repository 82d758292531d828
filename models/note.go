package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Blocks    []Block   `json:"blocks"`
}

type Block struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"-"`
	Type      BlockType `json:"type"`
	Position  int       `json:"position"`
	Data      Payload   `json:"data"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CreateNoteRequest requires a title key; an empty string is a valid title
type CreateNoteRequest struct {
	Title *string `json:"title" validate:"required"`
}

type CreateBlockRequest struct {
	Type     BlockType `json:"type" validate:"required,blocktype"`
	Position *int      `json:"position" validate:"required,gte=0,lte=2147483647"`
	Data     Payload   `json:"data"`
}

type UpdateBlockRequest struct {
	Data Payload `json:"data" validate:"required"`
}
