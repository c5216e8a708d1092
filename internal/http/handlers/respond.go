package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/middleware"
)

// respondError maps a core error to its HTTP status. Internal errors get
// logged with the request id and a generic body.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	reqID, _ := c.Locals(middleware.CtxRequestID).(string)

	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(dto.ErrorResponse{Error: "internal server error", RequestID: reqID})
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
}
