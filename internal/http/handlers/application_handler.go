package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/middleware"
	"github.com/campmatch/backend/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	log                *zap.Logger
}

func NewApplicationHandler(applicationService *services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService, log: log}
}

func (h *ApplicationHandler) CreateApplication(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	userID, _ := middleware.GetUserID(c)
	application, err := h.applicationService.Apply(c.Context(), userID, services.ApplicationInput{
		CampaignID: req.CampaignID,
		Message:    req.Message,
		VisitDate:  req.VisitDate,
	})
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse(application))
}

func (h *ApplicationHandler) MyApplications(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	page, limit := pagination(c)
	apps, total, err := h.applicationService.MyApplications(c.Context(), userID, c.Query("status"), page, limit)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(dto.NewPaginated(apps, page, limit, total)))
}
