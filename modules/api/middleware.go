package api

import (
	"strings"

	"github.com/example/taskboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key the authenticated identity is stored under
// in the Fiber context.
const UserContextKey = "user"

// AuthMiddleware validates the bearer token before any handler work.
// Failure short-circuits the request with 401 and no side effects.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Use: Bearer <token>")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return unauthorized(c, "Token is required")
		}

		identity, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, identity)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: message})
}
