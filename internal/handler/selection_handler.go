package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-compass/internal/catalog"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
	"github.com/noah-isme/course-compass/pkg/response"
)

type selectionService interface {
	Create() (string, catalog.State)
	State(id string) (catalog.State, error)
	ChooseProvider(ctx context.Context, id, provider string) (catalog.State, error)
	ChooseYear(ctx context.Context, id, year string) (catalog.State, error)
	ChooseTerm(ctx context.Context, id, termID string) (catalog.State, error)
	ChooseSubject(ctx context.Context, id, subject string) (catalog.State, error)
	ChooseCourse(ctx context.Context, id, course string) (catalog.State, error)
	Delete(id string)
}

// SelectionHandler exposes cascading selection sessions.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(service selectionService) *SelectionHandler {
	return &SelectionHandler{service: service}
}

type selectionCreateResponse struct {
	ID    string        `json:"id"`
	State catalog.State `json:"state"`
}

// Create godoc
// @Summary Start a selection session
// @Tags Selections
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /selections [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	id, state := h.service.Create()
	response.Created(c, selectionCreateResponse{ID: id, State: state})
}

// State godoc
// @Summary Snapshot a selection session
// @Tags Selections
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /selections/{id} [get]
func (h *SelectionHandler) State(c *gin.Context) {
	state, err := h.service.State(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

type chooseRequest struct {
	Provider string `json:"provider"`
	Year     string `json:"year"`
	TermID   string `json:"termId"`
	Subject  string `json:"subject"`
	Course   string `json:"course"`
}

// Choose godoc
// @Summary Advance a selection session one level
// @Tags Selections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param level path string true "Level to set" Enums(provider, year, term, subject, course)
// @Param payload body chooseRequest true "Value for the level"
// @Success 200 {object} response.Envelope
// @Router /selections/{id}/{level} [put]
func (h *SelectionHandler) Choose(c *gin.Context) {
	var req chooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	var (
		state catalog.State
		err   error
	)
	switch c.Param("level") {
	case "provider":
		state, err = h.service.ChooseProvider(ctx, id, req.Provider)
	case "year":
		state, err = h.service.ChooseYear(ctx, id, req.Year)
	case "term":
		state, err = h.service.ChooseTerm(ctx, id, req.TermID)
	case "subject":
		state, err = h.service.ChooseSubject(ctx, id, req.Subject)
	case "course":
		state, err = h.service.ChooseCourse(ctx, id, req.Course)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown selection level"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Delete godoc
// @Summary Discard a selection session
// @Tags Selections
// @Param id path string true "Session ID"
// @Success 204
// @Router /selections/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	h.service.Delete(c.Param("id"))
	response.NoContent(c)
}
