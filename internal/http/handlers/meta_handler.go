package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/rbac"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaRole struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var predefinedRoles = []MetaRole{
	{ID: rbac.RoleClient, Label: "Client"},
	{ID: rbac.RoleFreelancer, Label: "Freelancer"},
}

func (h *MetaHandler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedRoles})
}

// GetLimits publishes the field caps so clients can validate before
// submitting.
func (h *MetaHandler) GetLimits(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"max_name_len":        models.MaxNameLen,
		"max_title_len":       models.MaxTitleLen,
		"max_description_len": models.MaxDescriptionLen,
		"max_link_len":        models.MaxLinkLen,
		"max_narration_len":   models.MaxNarrationLen,
		"max_review_len":      models.MaxReviewLen,
	}})
}
