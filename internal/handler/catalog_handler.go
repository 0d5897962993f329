package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-compass/internal/models"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
	"github.com/noah-isme/course-compass/pkg/response"
)

// upstreamFailed reports whether err is an upstream catalog failure.
// Navigation levels degrade those to an empty list; the diagnostic is
// already logged where the failure was observed.
func upstreamFailed(err error) bool {
	return appErrors.FromError(err).Code == appErrors.ErrUpstream.Code
}

type catalogService interface {
	Providers() []string
	Years(ctx context.Context, provider string) ([]string, error)
	Terms(ctx context.Context, provider, year string) ([]models.Term, error)
	Subjects(ctx context.Context, provider, termID string) ([]models.Subject, error)
	Courses(ctx context.Context, provider, termID, subjectCode string) ([]models.Course, error)
	Sections(ctx context.Context, provider, termID, subjectCode, courseCode string) ([]models.Section, error)
	Outline(ctx context.Context, provider, year, term, dept, course, section string) (*models.Outline, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CatalogHandler exposes the provider catalog levels as REST resources.
type CatalogHandler struct {
	service catalogService
	cache   cacheInvalidator
}

// NewCatalogHandler constructs the handler. The invalidator may be nil when
// the request cache has no pattern-deletion support (in-memory backend).
func NewCatalogHandler(service catalogService, cache cacheInvalidator) *CatalogHandler {
	return &CatalogHandler{service: service, cache: cache}
}

// Providers godoc
// @Summary List registered catalog providers
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /providers [get]
func (h *CatalogHandler) Providers(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Providers(), nil)
}

// Years godoc
// @Summary List academic years for a provider
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/years [get]
func (h *CatalogHandler) Years(c *gin.Context) {
	years, err := h.service.Years(c.Request.Context(), c.Param("provider"))
	if err != nil {
		if upstreamFailed(err) {
			response.JSON(c, http.StatusOK, []string{}, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, years, nil)
}

// Terms godoc
// @Summary List terms within a year
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Param year path string true "Academic year"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/years/{year}/terms [get]
func (h *CatalogHandler) Terms(c *gin.Context) {
	terms, err := h.service.Terms(c.Request.Context(), c.Param("provider"), c.Param("year"))
	if err != nil {
		if upstreamFailed(err) {
			response.JSON(c, http.StatusOK, []models.Term{}, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, terms, nil)
}

// Subjects godoc
// @Summary List subjects offered in a term
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Param termId path string true "Term identifier"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/terms/{termId}/subjects [get]
func (h *CatalogHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context(), c.Param("provider"), c.Param("termId"))
	if err != nil {
		if upstreamFailed(err) {
			response.JSON(c, http.StatusOK, []models.Subject{}, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Courses godoc
// @Summary List courses under a subject
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Param termId path string true "Term identifier"
// @Param subject path string true "Subject code"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/terms/{termId}/subjects/{subject}/courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	courses, err := h.service.Courses(c.Request.Context(), c.Param("provider"), c.Param("termId"), c.Param("subject"))
	if err != nil {
		if upstreamFailed(err) {
			response.JSON(c, http.StatusOK, []models.Course{}, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Sections godoc
// @Summary List sections of a course
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Param termId path string true "Term identifier"
// @Param subject path string true "Subject code"
// @Param course path string true "Course code"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/terms/{termId}/subjects/{subject}/courses/{course}/sections [get]
func (h *CatalogHandler) Sections(c *gin.Context) {
	sections, err := h.service.Sections(c.Request.Context(), c.Param("provider"), c.Param("termId"), c.Param("subject"), c.Param("course"))
	if err != nil {
		if upstreamFailed(err) {
			response.JSON(c, http.StatusOK, []models.Section{}, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}

// Outline godoc
// @Summary Fetch the detailed outline for a section
// @Tags Catalog
// @Produce json
// @Param provider path string true "Provider name"
// @Param year query string true "Academic year"
// @Param term query string true "Term name"
// @Param dept query string true "Department code"
// @Param course query string true "Course number"
// @Param section query string true "Section code"
// @Success 200 {object} response.Envelope
// @Router /providers/{provider}/outline [get]
func (h *CatalogHandler) Outline(c *gin.Context) {
	outline, err := h.service.Outline(c.Request.Context(), c.Param("provider"),
		c.Query("year"), c.Query("term"), c.Query("dept"), c.Query("course"), c.Query("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outline, nil)
}

// InvalidateCache godoc
// @Summary Drop a provider's cached catalog responses
// @Tags Catalog
// @Param provider path string true "Provider name"
// @Success 204
// @Router /providers/{provider}/cache [delete]
func (h *CatalogHandler) InvalidateCache(c *gin.Context) {
	if h.cache == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "cache invalidation requires the redis backend"))
		return
	}
	provider := c.Param("provider")
	if err := h.cache.DeleteByPattern(c.Request.Context(), provider+":*"); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate cache"))
		return
	}
	response.NoContent(c)
}
