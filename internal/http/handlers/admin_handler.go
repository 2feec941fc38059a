package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/services"
)

// AdminHandler hosts the verification decisions made by the manual review
// process. Routes are guarded by the admin-key middleware.
type AdminHandler struct {
	advertiserService *services.AdvertiserService
	influencerService *services.InfluencerService
	log               *zap.Logger
}

func NewAdminHandler(advertiserService *services.AdvertiserService, influencerService *services.InfluencerService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{advertiserService: advertiserService, influencerService: influencerService, log: log}
}

func (h *AdminHandler) UpdateAdvertiserVerification(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid user id", nil))
	}

	var req dto.VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	if err := h.advertiserService.UpdateVerification(c.Context(), userID, req.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(fiber.Map{"status": req.Status}))
}

func (h *AdminHandler) UpdateChannelVerification(c *fiber.Ctx) error {
	channelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid channel id", nil))
	}

	var req dto.VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	if err := h.influencerService.UpdateChannelVerification(c.Context(), channelID, req.Status); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(fiber.Map{"status": req.Status}))
}
