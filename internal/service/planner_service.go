package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/planner"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

type plannerClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PlannerService turns free-form scheduling prompts into proposed weekly
// events via the chat-completion client, anchored on the current week.
type PlannerService struct {
	client   plannerClient
	calendar *CalendarService
	logger   *zap.Logger
	now      func() time.Time
}

// NewPlannerService constructs the service. client may be nil when the
// planner integration is disabled.
func NewPlannerService(client plannerClient, calendar *CalendarService, logger *zap.Logger) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{client: client, calendar: calendar, logger: logger, now: time.Now}
}

// PlanResult carries the assistant's conversational message alongside the
// structured events extracted from its reply.
type PlanResult struct {
	Message  string         `json:"message"`
	Proposed []models.Event `json:"proposed"`
}

// Plan sends the user's prompt plus a summary of their current week to the
// model and parses the reply into concrete events for the current week.
func (s *PlannerService) Plan(ctx context.Context, userID, prompt string) (*PlanResult, error) {
	if s.client == nil {
		return nil, appErrors.Clone(appErrors.ErrPlannerDisabled, "planner integration is not configured")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "prompt is required")
	}

	events := s.calendar.Events(userID)
	reply, err := s.client.Generate(ctx, planner.Prompt(prompt, events))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "planner request failed")
	}

	result := &PlanResult{Message: strings.TrimSpace(planner.StripJSONBlock(reply))}
	block, ok := planner.ExtractJSONBlock(reply)
	if !ok {
		return result, nil
	}

	rows := planner.SloppyParse(block)
	result.Proposed = planner.RowsToEvents(rows, planner.WeekStart(s.now()))
	s.logger.Info("planner proposal generated",
		zap.String("user", userID),
		zap.Int("rows", len(rows)),
		zap.Int("events", len(result.Proposed)))
	return result, nil
}

// Apply merges accepted planner proposals into the user's calendar and
// returns the events that were actually added.
func (s *PlannerService) Apply(ctx context.Context, userID string, events []models.Event) ([]models.Event, error) {
	if len(events) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no events to apply")
	}
	for _, ev := range events {
		if ev.Title == "" || ev.Start.IsZero() || ev.End.IsZero() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "events require title, start and end")
		}
		if ev.End.Before(ev.Start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "end must be on or after start")
		}
	}
	return s.calendar.AddEvents(userID, events), nil
}
