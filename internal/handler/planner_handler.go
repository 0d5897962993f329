package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/service"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
	"github.com/noah-isme/course-compass/pkg/response"
)

type plannerService interface {
	Plan(ctx context.Context, userID, prompt string) (*service.PlanResult, error)
	Apply(ctx context.Context, userID string, events []models.Event) ([]models.Event, error)
}

// PlannerHandler exposes the weekly planning assistant.
type PlannerHandler struct {
	service plannerService
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(service plannerService) *PlannerHandler {
	return &PlannerHandler{service: service}
}

type planRequest struct {
	Prompt string `json:"prompt"`
}

// Plan godoc
// @Summary Generate a weekly plan proposal
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body planRequest true "Free-form scheduling prompt"
// @Success 200 {object} response.Envelope
// @Router /planner/plan [post]
func (h *PlannerHandler) Plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	result, err := h.service.Plan(c.Request.Context(), userFromContext(c), req.Prompt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

type applyRequest struct {
	Events []models.Event `json:"events"`
}

// Apply godoc
// @Summary Merge accepted proposals into the calendar
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body applyRequest true "Events to apply"
// @Success 201 {object} response.Envelope
// @Router /planner/apply [post]
func (h *PlannerHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	added, err := h.service.Apply(c.Request.Context(), userFromContext(c), req.Events)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, added)
}
