package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/models"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// Selection levels, ordered by dependency. Changing a level invalidates
// everything at deeper levels.
const (
	levelYears = iota
	levelTerms
	levelSubjects
	levelCourses
	levelSections
	levelCount
)

// Selection is the cascading catalog selection state machine:
// Idle → YearChosen → TermChosen → SubjectChosen → CourseChosen →
// SectionsLoaded. Every transition synchronously clears all downstream
// state before its fetch starts, so stale lower-level options are never
// visible while a higher-level fetch is in flight. Catalog fetch failures
// degrade to empty lists; only precondition violations surface as errors.
type Selection struct {
	mu       sync.Mutex
	registry *Registry
	logger   *zap.Logger

	provider     Provider
	providerName string
	year         string
	termID       string
	subjectCode  string
	courseCode   string

	years    []string
	terms    []models.Term
	subjects []models.Subject
	courses  []models.Course
	sections []models.Section

	// tokens guard against a late-arriving response for a superseded
	// selection overwriting newer state: each fetch is tagged with the
	// token current at issue time and its result is discarded when the
	// level was re-invalidated meanwhile.
	tokens [levelCount]uint64
}

// NewSelection builds an empty selection bound to a registry.
func NewSelection(registry *Registry, logger *zap.Logger) *Selection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selection{registry: registry, logger: logger}
}

// State is a point-in-time snapshot of the selection chain.
type State struct {
	Provider string `json:"provider,omitempty"`
	Year     string `json:"year,omitempty"`
	TermID   string `json:"termId,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Course   string `json:"course,omitempty"`

	Years    []string         `json:"years"`
	Terms    []models.Term    `json:"terms"`
	Subjects []models.Subject `json:"subjects"`
	Courses  []models.Course  `json:"courses"`
	Sections []models.Section `json:"sections"`
}

// State returns a snapshot safe for serialization.
func (s *Selection) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Provider: s.providerName,
		Year:     s.year,
		TermID:   s.termID,
		Subject:  s.subjectCode,
		Course:   s.courseCode,
		Years:    append([]string(nil), s.years...),
		Terms:    append([]models.Term(nil), s.terms...),
		Subjects: append([]models.Subject(nil), s.subjects...),
		Courses:  append([]models.Course(nil), s.courses...),
		Sections: append([]models.Section(nil), s.sections...),
	}
}

// invalidateFrom clears selections and lists at the given level and all
// deeper levels, bumping their tokens so in-flight fetches are dropped.
// Caller holds the mutex. Returns the fetch token for the level.
func (s *Selection) invalidateFrom(level int) uint64 {
	for l := level; l < levelCount; l++ {
		s.tokens[l]++
	}
	switch level {
	case levelYears:
		s.year = ""
		s.years = nil
		fallthrough
	case levelTerms:
		s.termID = ""
		s.terms = nil
		fallthrough
	case levelSubjects:
		s.subjectCode = ""
		s.subjects = nil
		fallthrough
	case levelCourses:
		s.courseCode = ""
		s.courses = nil
		fallthrough
	case levelSections:
		s.sections = nil
	}
	return s.tokens[level]
}

// ChooseProvider selects an institution, resets the whole chain and loads
// its years. An unknown provider name is the only hard error.
func (s *Selection) ChooseProvider(ctx context.Context, name string) error {
	provider, ok := s.registry.Resolve(name)
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown provider: "+name)
	}

	s.mu.Lock()
	s.provider = provider
	s.providerName = name
	token := s.invalidateFrom(levelYears)
	s.mu.Unlock()

	years, err := provider.ListYears(ctx)
	if err != nil {
		s.logger.Warn("year load failed", zap.String("provider", name), zap.Error(err))
		years = nil
	}

	s.mu.Lock()
	if s.tokens[levelYears] == token {
		s.years = years
	}
	s.mu.Unlock()
	return nil
}

// ChooseYear selects a year and loads its terms.
func (s *Selection) ChooseYear(ctx context.Context, year string) error {
	s.mu.Lock()
	provider := s.provider
	if provider == nil {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "select a provider first")
	}
	token := s.invalidateFrom(levelTerms)
	s.year = year
	s.mu.Unlock()

	terms, err := provider.ListTerms(ctx, year)
	if err != nil {
		s.logger.Warn("term load failed",
			zap.String("provider", provider.Name()), zap.String("year", year), zap.Error(err))
		terms = nil
	}

	s.mu.Lock()
	if s.tokens[levelTerms] == token {
		s.terms = terms
	}
	s.mu.Unlock()
	return nil
}

// ChooseTerm selects a term and loads its subjects.
func (s *Selection) ChooseTerm(ctx context.Context, termID string) error {
	s.mu.Lock()
	provider := s.provider
	if provider == nil || s.year == "" {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "select a provider and year first")
	}
	token := s.invalidateFrom(levelSubjects)
	s.termID = termID
	s.mu.Unlock()

	subjects, err := provider.ListSubjects(ctx, termID)
	if err != nil {
		s.logger.Warn("subject load failed",
			zap.String("provider", provider.Name()), zap.String("term", termID), zap.Error(err))
		subjects = nil
	}

	s.mu.Lock()
	if s.tokens[levelSubjects] == token {
		s.subjects = subjects
	}
	s.mu.Unlock()
	return nil
}

// ChooseSubject selects a subject and loads its courses.
func (s *Selection) ChooseSubject(ctx context.Context, subjectCode string) error {
	s.mu.Lock()
	provider := s.provider
	termID := s.termID
	if provider == nil || s.year == "" || termID == "" {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "select a provider, year and term first")
	}
	token := s.invalidateFrom(levelCourses)
	s.subjectCode = subjectCode
	s.mu.Unlock()

	courses, err := provider.ListCourses(ctx, termID, subjectCode)
	if err != nil {
		s.logger.Warn("course load failed",
			zap.String("provider", provider.Name()), zap.String("term", termID),
			zap.String("subject", subjectCode), zap.Error(err))
		courses = nil
	}

	s.mu.Lock()
	if s.tokens[levelCourses] == token {
		s.courses = courses
	}
	s.mu.Unlock()
	return nil
}

// ChooseCourse selects a course and loads its sections. A failed section
// fetch leaves the list empty, matching the fail-soft navigation policy.
func (s *Selection) ChooseCourse(ctx context.Context, courseCode string) error {
	s.mu.Lock()
	provider := s.provider
	termID := s.termID
	subjectCode := s.subjectCode
	if provider == nil || s.year == "" || termID == "" || subjectCode == "" {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrValidation, "select a provider, year, term and subject first")
	}
	token := s.invalidateFrom(levelSections)
	s.courseCode = courseCode
	s.mu.Unlock()

	sections, err := provider.ListSections(ctx, termID, subjectCode, courseCode)
	if err != nil {
		s.logger.Warn("section load failed",
			zap.String("provider", provider.Name()), zap.String("term", termID),
			zap.String("subject", subjectCode), zap.String("course", courseCode), zap.Error(err))
		sections = nil
	}

	s.mu.Lock()
	if s.tokens[levelSections] == token {
		s.sections = sections
	}
	s.mu.Unlock()
	return nil
}
