package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/middleware"
	"github.com/campmatch/backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	campaign, err := h.campaignService.CreateCampaign(c.Context(), userID, services.CampaignInput{
		Title:            req.Title,
		RecruitmentStart: req.RecruitmentStart,
		RecruitmentEnd:   req.RecruitmentEnd,
		MaxParticipants:  req.MaxParticipants,
		Benefits:         req.Benefits,
		StoreInfo:        req.StoreInfo,
		Mission:          req.Mission,
	})
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse(campaign))
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	page, limit := pagination(c)
	campaigns, total, err := h.campaignService.ListCampaigns(c.Context(), services.ListCampaignsParams{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Region:   c.Query("region"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(dto.NewSuccessResponse(dto.NewPaginated(campaigns, page, limit, total)))
}

func (h *CampaignHandler) MyCampaigns(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	page, limit := pagination(c)
	campaigns, total, err := h.campaignService.MyCampaigns(c.Context(), userID, page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(dto.NewPaginated(campaigns, page, limit, total)))
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	var viewer *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		viewer = &userID
	}

	detail, err := h.campaignService.GetCampaign(c.Context(), id, viewer)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(detail))
}

func (h *CampaignHandler) ManageCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	userID, _ := middleware.GetUserID(c)
	view, err := h.campaignService.ManageCampaign(c.Context(), userID, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(view))
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	campaign, err := h.campaignService.UpdateCampaign(c.Context(), userID, id, services.CampaignPatch{
		Title:            req.Title,
		RecruitmentStart: req.RecruitmentStart,
		RecruitmentEnd:   req.RecruitmentEnd,
		MaxParticipants:  req.MaxParticipants,
		Benefits:         req.Benefits,
		StoreInfo:        req.StoreInfo,
		Mission:          req.Mission,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(campaign))
}

func (h *CampaignHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	var req dto.UpdateCampaignStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	campaign, err := h.campaignService.UpdateStatus(c.Context(), userID, id, req.Status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(campaign))
}

func (h *CampaignHandler) ListApplicants(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	userID, _ := middleware.GetUserID(c)
	applicants, err := h.campaignService.ListApplicants(c.Context(), userID, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(applicants))
}

func (h *CampaignHandler) SelectApplicants(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid campaign id", nil))
	}

	var req dto.SelectApplicantsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.campaignService.SelectApplicants(c.Context(), userID, id, req.SelectedIDs); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(fiber.Map{"selected": len(req.SelectedIDs)}))
}
