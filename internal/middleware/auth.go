package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader carries the session token on protected routes.
const TokenHeader = "auth-token"

// UserIDKey is the c.Locals key holding the authenticated user id.
const UserIDKey = "user_id"

// TokenValidator resolves a session token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// session token and stores the resolved user id for later handlers.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return unauthorized(c)
		}

		userID, err := validator.ValidateToken(token)
		if err != nil {
			log.Printf("Session token rejected: %v", err)
			return unauthorized(c)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"errors": "Please authenticate using a valid token",
	})
}
