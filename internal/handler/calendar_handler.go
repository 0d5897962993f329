package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/service"
	"github.com/noah-isme/course-compass/pkg/export"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
	"github.com/noah-isme/course-compass/pkg/response"
)

type calendarService interface {
	Events(userID string) []models.Event
	AddSection(ctx context.Context, userID string, req service.AddSectionRequest) ([]models.Event, error)
	AddOutline(ctx context.Context, userID string, req service.AddOutlineRequest) ([]models.Event, error)
	AddManual(ctx context.Context, userID string, req service.ManualEventRequest) (*models.Event, error)
	DeleteEvent(userID, eventID string) error
	DeleteCourse(userID, courseKey string) int
	Save(ctx context.Context, userID string) error
	Load(ctx context.Context, userID string) ([]models.Event, error)
}

// CalendarHandler exposes the per-user calendar: listing, course and manual
// additions, removals, snapshots, and file exports.
type CalendarHandler struct {
	service calendarService
	ics     *export.ICSExporter
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewCalendarHandler constructs the handler. Exporters may be nil when file
// exports are disabled.
func NewCalendarHandler(service calendarService, ics *export.ICSExporter, csv *export.CSVExporter, pdf *export.PDFExporter) *CalendarHandler {
	return &CalendarHandler{service: service, ics: ics, csv: csv, pdf: pdf}
}

// List godoc
// @Summary List the user's calendar events
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendars/events [get]
func (h *CalendarHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Events(userFromContext(c)), nil)
}

// AddSection godoc
// @Summary Expand a course section into dated events
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.AddSectionRequest true "Section selection and date range"
// @Success 201 {object} response.Envelope
// @Router /calendars/sections [post]
func (h *CalendarHandler) AddSection(c *gin.Context) {
	var req service.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	added, err := h.service.AddSection(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, added)
}

// AddOutline godoc
// @Summary Expand a section outline into dated events
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.AddOutlineRequest true "Outline identifier"
// @Success 201 {object} response.Envelope
// @Router /calendars/outlines [post]
func (h *CalendarHandler) AddOutline(c *gin.Context) {
	var req service.AddOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	added, err := h.service.AddOutline(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, added)
}

// AddManual godoc
// @Summary Add a user-authored event
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.ManualEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /calendars/events [post]
func (h *CalendarHandler) AddManual(c *gin.Context) {
	var req service.ManualEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	event, err := h.service.AddManual(c.Request.Context(), userFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// DeleteEvent godoc
// @Summary Remove one event
// @Tags Calendar
// @Param id path string true "Event ID"
// @Success 204
// @Router /calendars/events/{id} [delete]
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	if err := h.service.DeleteEvent(userFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteCourse godoc
// @Summary Remove every event of a course
// @Tags Calendar
// @Produce json
// @Param courseKey path string true "Course key"
// @Success 200 {object} response.Envelope
// @Router /calendars/courses/{courseKey} [delete]
func (h *CalendarHandler) DeleteCourse(c *gin.Context) {
	removed := h.service.DeleteCourse(userFromContext(c), c.Param("courseKey"))
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}

// Save godoc
// @Summary Persist the calendar snapshot
// @Tags Calendar
// @Success 204
// @Router /calendars/snapshot [put]
func (h *CalendarHandler) Save(c *gin.Context) {
	if err := h.service.Save(c.Request.Context(), userFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Load godoc
// @Summary Restore the calendar from its snapshot
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendars/snapshot [get]
func (h *CalendarHandler) Load(c *gin.Context) {
	events, err := h.service.Load(c.Request.Context(), userFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// ExportICS godoc
// @Summary Export the calendar as iCalendar
// @Tags Calendar
// @Produce text/calendar
// @Success 200 {string} string
// @Router /calendars/export/ics [get]
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	if h.ics == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	payload, err := h.ics.Render(h.service.Events(userFromContext(c)), "Course Compass")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ics"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar", payload)
}

// ExportCSV godoc
// @Summary Export the calendar as CSV
// @Tags Calendar
// @Produce text/csv
// @Success 200 {string} string
// @Router /calendars/export/csv [get]
func (h *CalendarHandler) ExportCSV(c *gin.Context) {
	if h.csv == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	payload, err := h.csv.Render(export.EventsDataset(h.service.Events(userFromContext(c))))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export the calendar as PDF
// @Tags Calendar
// @Produce application/pdf
// @Success 200 {string} string
// @Router /calendars/export/pdf [get]
func (h *CalendarHandler) ExportPDF(c *gin.Context) {
	if h.pdf == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exports are disabled"))
		return
	}
	payload, err := h.pdf.Render(export.EventsDataset(h.service.Events(userFromContext(c))), "Weekly schedule")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
