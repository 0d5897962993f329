package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/catalog"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// SelectionService holds server-side selection sessions. Each session is an
// independent cascading selection machine keyed by an opaque id.
type SelectionService struct {
	registry *catalog.Registry
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*catalog.Selection
}

// NewSelectionService constructs the service.
func NewSelectionService(registry *catalog.Registry, logger *zap.Logger) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{
		registry: registry,
		logger:   logger,
		sessions: make(map[string]*catalog.Selection),
	}
}

// Create starts a fresh selection session and returns its id with the
// initial (empty) state.
func (s *SelectionService) Create() (string, catalog.State) {
	id := uuid.NewString()
	sel := catalog.NewSelection(s.registry, s.logger)

	s.mu.Lock()
	s.sessions[id] = sel
	s.mu.Unlock()

	return id, sel.State()
}

func (s *SelectionService) get(id string) (*catalog.Selection, error) {
	s.mu.RLock()
	sel, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "selection session not found: "+id)
	}
	return sel, nil
}

// State returns a snapshot of the session.
func (s *SelectionService) State(id string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// ChooseProvider sets the session's institution and loads its years.
func (s *SelectionService) ChooseProvider(ctx context.Context, id, providerName string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	if err := sel.ChooseProvider(ctx, providerName); err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// ChooseYear advances the session to a year.
func (s *SelectionService) ChooseYear(ctx context.Context, id, year string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	if err := sel.ChooseYear(ctx, year); err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// ChooseTerm advances the session to a term.
func (s *SelectionService) ChooseTerm(ctx context.Context, id, termID string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	if err := sel.ChooseTerm(ctx, termID); err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// ChooseSubject advances the session to a subject.
func (s *SelectionService) ChooseSubject(ctx context.Context, id, subjectCode string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	if err := sel.ChooseSubject(ctx, subjectCode); err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// ChooseCourse advances the session to a course and loads its sections.
func (s *SelectionService) ChooseCourse(ctx context.Context, id, courseCode string) (catalog.State, error) {
	sel, err := s.get(id)
	if err != nil {
		return catalog.State{}, err
	}
	if err := sel.ChooseCourse(ctx, courseCode); err != nil {
		return catalog.State{}, err
	}
	return sel.State(), nil
}

// Delete drops a session. Unknown ids are a no-op.
func (s *SelectionService) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
