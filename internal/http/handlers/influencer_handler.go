package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/middleware"
	"github.com/campmatch/backend/internal/services"
)

type InfluencerHandler struct {
	influencerService *services.InfluencerService
	log               *zap.Logger
}

func NewInfluencerHandler(influencerService *services.InfluencerService, log *zap.Logger) *InfluencerHandler {
	return &InfluencerHandler{influencerService: influencerService, log: log}
}

func (h *InfluencerHandler) SubmitProfile(c *fiber.Ctx) error {
	var req dto.InfluencerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	in := services.InfluencerProfileInput{
		BirthDate: req.BirthDate,
		Status:    req.Status,
	}
	for _, ch := range req.Channels {
		in.Channels = append(in.Channels, services.ChannelInput{
			Platform: ch.Platform,
			Name:     ch.Name,
			URL:      ch.URL,
		})
	}

	userID, _ := middleware.GetUserID(c)
	view, err := h.influencerService.SubmitProfile(c.Context(), userID, in)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse(view))
}

func (h *InfluencerHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	view, err := h.influencerService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(view))
}

func (h *InfluencerHandler) UpdateChannel(c *fiber.Ctx) error {
	channelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid channel id", nil))
	}

	var req dto.ChannelUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	channel, err := h.influencerService.UpdateChannel(c.Context(), userID, channelID, req.Name, req.URL)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(channel))
}

func (h *InfluencerHandler) DeleteChannel(c *fiber.Ctx) error {
	channelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid channel id", nil))
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.influencerService.DeleteChannel(c.Context(), userID, channelID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(fiber.Map{"deleted": true}))
}
