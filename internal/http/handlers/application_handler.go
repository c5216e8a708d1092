package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/middleware"
	"github.com/freelance-market/backend/internal/services"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
	log        *zap.Logger
}

func NewApplicationHandler(appService *services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{appService: appService, log: log}
}

// Apply submits an application to an open job.
// POST /jobs/:id/applications
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	app, err := h.appService.Apply(c.Context(), middleware.GetAddress(c), jobID, req.ResumeLink, req.ExpectedEndDate)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: app})
}

// SubmitWork records the deliverable on the caller's approved application.
// POST /applications/:id/submit
func (h *ApplicationHandler) SubmitWork(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	var req dto.SubmitWorkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.appService.SubmitWork(c.Context(), middleware.GetAddress(c), appID, req.SubmissionLink, req.Narration); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

// GET /applications/:id
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	app, err := h.appService.Get(c.Context(), middleware.GetAddress(c), appID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: app})
}

// ListForJob returns a job's applications to the client who posted it.
// GET /jobs/:id/applications
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}

	apps, err := h.appService.ListForJob(c.Context(), middleware.GetAddress(c), jobID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: apps})
}

// GET /applications/my
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	apps, err := h.appService.ListMine(c.Context(), middleware.GetAddress(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: apps})
}
