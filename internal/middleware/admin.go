package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/campmatch/backend/internal/http/dto"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards the verification endpoints. When no key is
// configured the endpoints are disabled entirely.
func RequireAdminKey(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.NewErrorResponse("ADMIN_DISABLED", "admin API is not configured", nil))
		}

		provided := c.Get(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse("UNAUTHORIZED", "invalid admin key", nil))
		}

		return c.Next()
	}
}
