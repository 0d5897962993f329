package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/schedule"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

type snapshotStore interface {
	Save(ctx context.Context, userID string, events []models.Event) error
	Load(ctx context.Context, userID string) ([]models.Event, error)
}

// CalendarService maintains per-user event collections: course occurrences
// expanded from catalog selections, manual entries, and applied planner
// proposals. Collections live in memory; snapshots persist through the
// optional store.
type CalendarService struct {
	catalog   *CatalogService
	store     snapshotStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu        sync.RWMutex
	calendars map[string][]models.Event
}

// NewCalendarService constructs the service. store may be nil when
// persistence is disabled.
func NewCalendarService(catalogSvc *CatalogService, store snapshotStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		catalog:   catalogSvc,
		store:     store,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		calendars: make(map[string][]models.Event),
	}
}

// Events returns the user's collection ordered by start time.
func (s *CalendarService) Events(userID string) []models.Event {
	s.mu.RLock()
	events := append([]models.Event(nil), s.calendars[userID]...)
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

// AddSectionRequest describes a section selection plus the date range to
// expand its weekly meeting patterns over.
type AddSectionRequest struct {
	Provider  string    `json:"provider" validate:"required"`
	Year      string    `json:"year" validate:"required"`
	TermID    string    `json:"termId" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Course    string    `json:"course" validate:"required"`
	SectionID string    `json:"sectionId" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// AddSection expands a section's meeting patterns into dated events and
// merges them into the user's collection. Returns the events added.
func (s *CalendarService) AddSection(ctx context.Context, userID string, req AddSectionRequest) ([]models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be on or after startDate")
	}

	section, err := s.catalog.FindSection(ctx, req.Provider, req.TermID, req.Subject, req.Course, req.SectionID)
	if err != nil {
		return nil, err
	}

	key := models.CourseKey(req.Year, req.TermID, req.Subject, req.Course, req.SectionID)
	title := section.Course.Title
	if title == "" {
		title = section.Course.Subject + " " + section.Course.Code
	}

	expanded := schedule.ExpandMeetings(title, key, section.Meetings, req.StartDate, req.EndDate)
	if len(expanded) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySchedule, "section has no expandable meeting patterns")
	}
	s.metrics.AddEventsExpanded("section", len(expanded))

	added := s.merge(userID, expanded)
	s.logger.Info("added section to calendar",
		zap.String("user", userID),
		zap.String("courseKey", key),
		zap.Int("expanded", len(expanded)),
		zap.Int("added", len(added)))
	return added, nil
}

// AddOutlineRequest identifies a section outline to expand.
type AddOutlineRequest struct {
	Provider string `json:"provider" validate:"required"`
	Year     string `json:"year" validate:"required"`
	Term     string `json:"term" validate:"required"`
	Dept     string `json:"dept" validate:"required"`
	Course   string `json:"course" validate:"required"`
	Section  string `json:"section" validate:"required"`
}

// AddOutline fetches a detailed outline and expands its dated schedule
// items into the user's collection. Exam rows are excluded.
func (s *CalendarService) AddOutline(ctx context.Context, userID string, req AddOutlineRequest) ([]models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	outline, err := s.catalog.Outline(ctx, req.Provider, req.Year, req.Term, req.Dept, req.Course, req.Section)
	if err != nil {
		return nil, err
	}

	key := models.CourseKey(req.Year, req.Term, req.Dept, req.Course, req.Section)
	expanded := schedule.ExpandOutline(*outline, key)
	if len(expanded) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySchedule, "outline has no expandable schedule items")
	}
	s.metrics.AddEventsExpanded("outline", len(expanded))

	added := s.merge(userID, expanded)
	s.logger.Info("added outline to calendar",
		zap.String("user", userID),
		zap.String("courseKey", key),
		zap.Int("expanded", len(expanded)),
		zap.Int("added", len(added)))
	return added, nil
}

// ManualEventRequest describes a user-authored event.
type ManualEventRequest struct {
	Title  string    `json:"title" validate:"required"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
	AllDay bool      `json:"allDay"`
}

// AddManual appends a single user-authored event.
func (s *CalendarService) AddManual(ctx context.Context, userID string, req ManualEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.End.Before(req.Start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must be on or after start")
	}

	event := models.Event{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Start:     req.Start,
		End:       req.End,
		AllDay:    req.AllDay,
		EventType: models.EventTypeManual,
	}
	added := s.merge(userID, []models.Event{event})
	if len(added) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "an identical event already exists")
	}
	return &added[0], nil
}

// AddEvents merges pre-built events (planner proposals) into the user's
// collection and returns the ones actually added.
func (s *CalendarService) AddEvents(userID string, events []models.Event) []models.Event {
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
	}
	return s.merge(userID, events)
}

// DeleteEvent removes one event by id.
func (s *CalendarService) DeleteEvent(userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.calendars[userID]
	for i := range events {
		if events[i].ID == eventID {
			s.calendars[userID] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "event not found: "+eventID)
}

// DeleteCourse removes every event sharing the given course key and reports
// how many were dropped.
func (s *CalendarService) DeleteCourse(userID, courseKey string) int {
	if courseKey == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.calendars[userID]
	kept := events[:0]
	removed := 0
	for _, ev := range events {
		if ev.CourseKey == courseKey {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	s.calendars[userID] = kept
	return removed
}

// Save persists the user's collection through the snapshot store.
func (s *CalendarService) Save(ctx context.Context, userID string) error {
	if s.store == nil {
		return appErrors.Clone(appErrors.ErrStoreDisabled, "snapshot store is not configured")
	}
	events := s.Events(userID)
	if err := s.store.Save(ctx, userID, events); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save snapshot")
	}
	return nil
}

// Load replaces the user's in-memory collection with the persisted snapshot.
func (s *CalendarService) Load(ctx context.Context, userID string) ([]models.Event, error) {
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrStoreDisabled, "snapshot store is not configured")
	}
	events, err := s.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no snapshot for user")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}

	s.mu.Lock()
	s.calendars[userID] = events
	s.mu.Unlock()
	return s.Events(userID), nil
}

// merge appends incoming events to the user's collection, dropping any that
// duplicate an existing occurrence and regenerating ids that collide.
// Returns the events that survived.
func (s *CalendarService) merge(userID string, incoming []models.Event) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.calendars[userID]
	ids := make(map[string]struct{}, len(existing))
	for _, ev := range existing {
		ids[ev.ID] = struct{}{}
	}

	added := make([]models.Event, 0, len(incoming))
	for _, ev := range incoming {
		dup := false
		for _, have := range existing {
			if have.SameOccurrence(ev) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		if _, taken := ids[ev.ID]; taken || ev.ID == "" {
			ev.ID = ev.ID + "-" + uuid.NewString()[:8]
		}
		ids[ev.ID] = struct{}{}
		existing = append(existing, ev)
		added = append(added, ev)
	}
	s.calendars[userID] = existing
	return added
}
