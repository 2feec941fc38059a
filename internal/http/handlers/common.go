package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campmatch/backend/internal/apperr"
	"github.com/campmatch/backend/internal/http/dto"
)

// respondErr maps a service error onto the envelope with its carried status.
func respondErr(c *fiber.Ctx, err error) error {
	ae := apperr.From(err)
	return c.Status(ae.Status).JSON(dto.FromAppError(ae))
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func pagination(c *fiber.Ctx) (page, limit int) {
	return queryInt(c, "page", 1), queryInt(c, "limit", 20)
}
