package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/models"
)

// Categories advertisers can pick for their store.
var storeCategories = []string{
	"restaurant", "cafe", "beauty", "fitness", "fashion", "living", "digital", "etc",
}

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Platforms(c *fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(models.AllPlatforms))
}

func (h *MetaHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.NewSuccessResponse(storeCategories))
}
