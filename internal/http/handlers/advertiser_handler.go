package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/middleware"
	"github.com/campmatch/backend/internal/services"
)

type AdvertiserHandler struct {
	advertiserService *services.AdvertiserService
	log               *zap.Logger
}

func NewAdvertiserHandler(advertiserService *services.AdvertiserService, log *zap.Logger) *AdvertiserHandler {
	return &AdvertiserHandler{advertiserService: advertiserService, log: log}
}

func (h *AdvertiserHandler) SubmitProfile(c *fiber.Ctx) error {
	var req dto.AdvertiserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	profile, err := h.advertiserService.SubmitProfile(c.Context(), userID, req.CompanyName, req.Location, req.Category, req.BusinessNumber)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse(profile))
}

func (h *AdvertiserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	profile, err := h.advertiserService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(profile))
}
