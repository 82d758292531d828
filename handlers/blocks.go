package handlers

import (
	"block-notes/app"
	"block-notes/middleware"
	"block-notes/models"

	"github.com/gofiber/fiber/v2"
)

// CreateBlock adds a block to one of the caller's notes
func CreateBlock(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := pathID(a, c, "id")
		if err != nil {
			return validationError(c, err)
		}

		var req models.CreateBlockRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		block, err := a.NoteService.CreateBlock(c.UserContext(), userID, noteID, req.Type, *req.Position, req.Data)
		if err != nil {
			return handleServiceError(c, err, "Failed to create block")
		}

		return success(c, block)
	}
}

// UpdateBlock replaces a block's payload
func UpdateBlock(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		blockID, err := pathID(a, c, "id")
		if err != nil {
			return validationError(c, err)
		}

		var req models.UpdateBlockRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		block, err := a.NoteService.UpdateBlock(c.UserContext(), userID, blockID, req.Data)
		if err != nil {
			return handleServiceError(c, err, "Failed to update block")
		}

		return success(c, block)
	}
}

// DeleteBlock removes a block
func DeleteBlock(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		blockID, err := pathID(a, c, "id")
		if err != nil {
			return validationError(c, err)
		}

		userID := middleware.GetUserID(c)

		if err := a.NoteService.DeleteBlock(c.UserContext(), userID, blockID); err != nil {
			return handleServiceError(c, err, "Failed to delete block")
		}

		return acknowledged(c)
	}
}
