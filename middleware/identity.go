package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Identity attaches the caller identity to every request. There is no
// authentication: all requests act as the configured development user.
func Identity(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

// RequireIdentity rejects requests that reached the API without an identity
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing identity",
			})
		}
		return c.Next()
	}
}
