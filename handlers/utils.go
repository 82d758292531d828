package handlers

import (
	"block-notes/app"
	"block-notes/middleware"
	"block-notes/services"
	"block-notes/validator"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data any) error {
	return c.JSON(data)
}

func acknowledged(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationErrs,
		})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	slog.Error("server error",
		"request_id", middleware.GetRequestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	})
}

// handleServiceError maps service errors onto HTTP responses
func handleServiceError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		return notFound(c, "Note not found")
	case errors.Is(err, services.ErrBlockNotFound):
		return notFound(c, "Block not found")
	case errors.Is(err, services.ErrInvalidBlockType), errors.Is(err, services.ErrInvalidPosition):
		return validationError(c, err)
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// pathID reads a UUID path parameter, normalized to lower case
func pathID(a *app.App, c *fiber.Ctx, name string) (string, error) {
	id := strings.ToLower(c.Params(name))
	if err := a.Validator.ValidateVar(name, id, "required,uuid"); err != nil {
		return "", err
	}
	return id, nil
}
