package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/service"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
	"github.com/noah-isme/course-compass/pkg/export"
)

type calendarServiceStub struct {
	events     []models.Event
	added      []models.Event
	lastUser   string
	addErr     error
	deleteErr  error
	snapshotOK bool
}

func (s *calendarServiceStub) Events(userID string) []models.Event {
	s.lastUser = userID
	return s.events
}

func (s *calendarServiceStub) AddSection(_ context.Context, userID string, _ service.AddSectionRequest) ([]models.Event, error) {
	s.lastUser = userID
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.added, nil
}

func (s *calendarServiceStub) AddOutline(_ context.Context, userID string, _ service.AddOutlineRequest) ([]models.Event, error) {
	s.lastUser = userID
	if s.addErr != nil {
		return nil, s.addErr
	}
	return s.added, nil
}

func (s *calendarServiceStub) AddManual(_ context.Context, userID string, req service.ManualEventRequest) (*models.Event, error) {
	s.lastUser = userID
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &models.Event{ID: "manual-1", Title: req.Title, Start: req.Start, End: req.End}, nil
}

func (s *calendarServiceStub) DeleteEvent(userID, eventID string) error {
	s.lastUser = userID
	return s.deleteErr
}

func (s *calendarServiceStub) DeleteCourse(userID, courseKey string) int {
	s.lastUser = userID
	return 2
}

func (s *calendarServiceStub) Save(_ context.Context, userID string) error {
	s.lastUser = userID
	if !s.snapshotOK {
		return appErrors.ErrStoreDisabled
	}
	return nil
}

func (s *calendarServiceStub) Load(_ context.Context, userID string) ([]models.Event, error) {
	s.lastUser = userID
	if !s.snapshotOK {
		return nil, appErrors.ErrStoreDisabled
	}
	return s.events, nil
}

func buildCalendarRouter(svc *calendarServiceStub, withExports bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	var h *CalendarHandler
	if withExports {
		h = NewCalendarHandler(svc, export.NewICSExporter(), export.NewCSVExporter(), export.NewPDFExporter())
	} else {
		h = NewCalendarHandler(svc, nil, nil, nil)
	}
	router := gin.New()
	router.GET("/calendars/events", h.List)
	router.POST("/calendars/events", h.AddManual)
	router.DELETE("/calendars/events/:id", h.DeleteEvent)
	router.POST("/calendars/sections", h.AddSection)
	router.DELETE("/calendars/courses/:courseKey", h.DeleteCourse)
	router.PUT("/calendars/snapshot", h.Save)
	router.GET("/calendars/export/ics", h.ExportICS)
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCalendarHandlerRoutes(t *testing.T) {
	svc := &calendarServiceStub{
		events: []models.Event{{
			ID:    "ev-1",
			Title: "CMPT 120",
			Start: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 1, 11, 20, 0, 0, time.UTC),
		}},
		added:      []models.Event{{ID: "ev-2", Title: "CMPT 225"}},
		snapshotOK: true,
	}
	router := buildCalendarRouter(svc, true)

	t.Run("list uses identity header", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/calendars/events", nil)
		req.Header.Set("X-User-ID", "alice")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"CMPT 120"`)
		require.Equal(t, "alice", svc.lastUser)
	})

	t.Run("list falls back to default user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/calendars/events", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "default", svc.lastUser)
	})

	t.Run("add section created", func(t *testing.T) {
		body := `{"provider":"sfu","year":"2025","termId":"fall","subject":"cmpt","course":"120","sectionId":"d100","startDate":"2025-09-01T00:00:00Z","endDate":"2025-12-05T00:00:00Z"}`
		req, _ := http.NewRequest(http.MethodPost, "/calendars/sections", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"ev-2"`)
	})

	t.Run("add section invalid json", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/calendars/sections", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("add manual created", func(t *testing.T) {
		body := `{"title":"Gym","start":"2025-09-02T18:00:00Z","end":"2025-09-02T19:00:00Z"}`
		req, _ := http.NewRequest(http.MethodPost, "/calendars/events", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"manual-1"`)
	})

	t.Run("delete event no content", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/calendars/events/ev-1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("delete course reports count", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/calendars/courses/2025-fall-cmpt-120-d100", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"removed":2`)
	})

	t.Run("snapshot save no content", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/calendars/snapshot", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("ics export", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/calendars/export/ics", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "text/calendar", resp.Header().Get("Content-Type"))
		require.Contains(t, resp.Body.String(), "BEGIN:VCALENDAR")
	})
}

func TestCalendarHandlerErrorMapping(t *testing.T) {
	svc := &calendarServiceStub{
		addErr:    appErrors.Clone(appErrors.ErrEmptySchedule, "section has no expandable meeting patterns"),
		deleteErr: appErrors.Clone(appErrors.ErrNotFound, "event not found"),
	}
	router := buildCalendarRouter(svc, false)

	t.Run("empty schedule maps to 422", func(t *testing.T) {
		body := `{"provider":"sfu","year":"2025","termId":"fall","subject":"cmpt","course":"120","sectionId":"d100","startDate":"2025-09-01T00:00:00Z","endDate":"2025-12-05T00:00:00Z"}`
		req, _ := http.NewRequest(http.MethodPost, "/calendars/sections", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("missing event maps to 404", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/calendars/events/nope", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("disabled store maps to 503", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, "/calendars/snapshot", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("disabled exports map to 400", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/calendars/export/ics", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
