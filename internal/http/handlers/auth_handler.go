package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/http/dto"
	"github.com/campmatch/backend/internal/middleware"
	"github.com/campmatch/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	profile, token, err := h.authService.Signup(c.Context(), req.Name, req.Phone, req.Email, req.Password, req.Role)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewSuccessResponse(fiber.Map{
		"token":   token,
		"profile": profile,
	}))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("VALIDATION_ERROR", "invalid request body", nil))
	}
	if ae := dto.ValidateStruct(req); ae != nil {
		return respondErr(c, ae)
	}

	profile, token, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(dto.NewSuccessResponse(fiber.Map{
		"token":   token,
		"profile": profile,
	}))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := middleware.GetUserID(c)
	profile, err := h.authService.Me(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.NewSuccessResponse(profile))
}
