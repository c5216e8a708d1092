package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/middleware"
	"github.com/freelance-market/backend/internal/repositories"
	"github.com/freelance-market/backend/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
	log        *zap.Logger
}

func NewJobHandler(jobService *services.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobService: jobService, log: log}
}

// PostJob creates a job and locks its budget in escrow.
// POST /jobs
func (h *JobHandler) PostJob(c *fiber.Ctx) error {
	var req dto.PostJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	job, err := h.jobService.PostJob(c.Context(), middleware.GetAddress(c), services.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: job})
}

// GET /jobs
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	filter := repositories.JobFilter{
		Limit:  20,
		Offset: 0,
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("client_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.ClientID = &id
		}
	}

	jobs, err := h.jobService.ListJobs(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: jobs})
}

// GET /jobs/:id
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}

	job, err := h.jobService.GetJob(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: job})
}

// EscrowInfo returns the custody record backing a job's budget.
// GET /jobs/:id/escrow
func (h *JobHandler) EscrowInfo(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}

	escrow, err := h.jobService.EscrowInfo(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: escrow})
}

// ApproveApplication picks the winning application and fills the job.
// POST /jobs/:id/applications/:appId/approve
func (h *JobHandler) ApproveApplication(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}
	appID, err := uuid.Parse(c.Params("appId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	if err := h.jobService.ApproveApplication(c.Context(), middleware.GetAddress(c), jobID, appID); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

// ApproveSubmission signs off the submitted work and releases the escrow.
// POST /jobs/:id/applications/:appId/approve-submission
func (h *JobHandler) ApproveSubmission(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid job id"})
	}
	appID, err := uuid.Parse(c.Params("appId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid application id"})
	}

	var req dto.ApproveSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	released, err := h.jobService.ApproveSubmission(c.Context(), middleware.GetAddress(c), jobID, appID, req.ClientReview)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.ReleaseResponse{Released: released}})
}
