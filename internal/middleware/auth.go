package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/campmatch/backend/internal/auth"
	"github.com/campmatch/backend/internal/http/dto"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireAuth validates the bearer token and stores the principal's id and
// role in request locals.
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse("UNAUTHORIZED", "missing authorization header", nil))
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse("UNAUTHORIZED", "invalid authorization header", nil))
		}

		claims, err := auth.ParseJWT(jwtSecret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse("UNAUTHORIZED", "invalid or expired token", nil))
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// OptionalAuth populates locals when a valid bearer token is present and
// lets the request through either way. Used on public pages that render
// viewer-specific fields.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if claims, err := auth.ParseJWT(jwtSecret, parts[1]); err == nil {
				c.Locals(LocalUserID, claims.UserID)
				c.Locals(LocalRole, claims.Role)
			}
		}
		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	return id, ok
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
