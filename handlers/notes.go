package handlers

import (
	"block-notes/app"
	"block-notes/middleware"
	"block-notes/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns the caller's notes with their blocks
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)

		notes, err := a.NoteService.List(c.UserContext(), userID)
		if err != nil {
			return handleServiceError(c, err, "Failed to fetch notes")
		}

		return success(c, notes)
	}
}

// CreateNote creates a note with one empty text block
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		note, err := a.NoteService.Create(c.UserContext(), userID, *req.Title)
		if err != nil {
			return handleServiceError(c, err, "Failed to create note")
		}

		return success(c, note)
	}
}

// GetNote returns a single note with its blocks
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := pathID(a, c, "id")
		if err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		note, err := a.NoteService.Get(c.UserContext(), userID, noteID)
		if err != nil {
			return handleServiceError(c, err, "Failed to fetch note")
		}

		return success(c, note)
	}
}

// DeleteNote deletes a note and all of its blocks
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := pathID(a, c, "id")
		if err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		if err := a.NoteService.Delete(c.UserContext(), userID, noteID); err != nil {
			return handleServiceError(c, err, "Failed to delete note")
		}

		return acknowledged(c)
	}
}
