package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/middleware"
	"github.com/freelance-market/backend/internal/services"
)

type UserHandler struct {
	registry *services.RegistryService
	log      *zap.Logger
}

func NewUserHandler(registry *services.RegistryService, log *zap.Logger) *UserHandler {
	return &UserHandler{registry: registry, log: log}
}

// Register binds the authenticated wallet address to a name and role.
// POST /register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	address := middleware.GetAddress(c)
	user, err := h.registry.Register(c.Context(), address, req.Name, req.Role)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: user})
}

// GET /me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.registry.Profile(c.Context(), middleware.GetAddress(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}
