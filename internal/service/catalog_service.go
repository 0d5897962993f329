package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/catalog"
	"github.com/noah-isme/course-compass/internal/models"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// CatalogService exposes the provider contract over the registry. Listing
// operations surface upstream failures so callers can distinguish an empty
// catalog level from a broken source; the selection machine layers its own
// fail-soft behavior on top.
type CatalogService struct {
	registry *catalog.Registry
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(registry *catalog.Registry, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{registry: registry, metrics: metrics, logger: logger}
}

// Registry exposes the underlying provider registry for selection sessions.
func (s *CatalogService) Registry() *catalog.Registry {
	return s.registry
}

// Providers lists registered institutions.
func (s *CatalogService) Providers() []string {
	return s.registry.Names()
}

func (s *CatalogService) resolve(name string) (catalog.Provider, error) {
	provider, ok := s.registry.Resolve(name)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown provider: "+name)
	}
	return provider, nil
}

func (s *CatalogService) observe(provider string, started time.Time, err error) {
	s.metrics.ObserveUpstream(provider, time.Since(started), err)
}

// upstreamMessage keeps the provider's HTTP status and response text in the
// user-facing message so a failed add names its likely cause.
func upstreamMessage(action string, err error) string {
	var httpErr *catalog.ProviderHTTPError
	if errors.As(err, &httpErr) {
		return action + ": " + httpErr.Error()
	}
	return action
}

// Years lists the academic years a provider publishes.
func (s *CatalogService) Years(ctx context.Context, providerName string) ([]string, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	years, err := provider.ListYears(ctx)
	s.observe(providerName, started, err)
	if err != nil {
		s.logger.Warn("list years failed", zap.String("provider", providerName), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to list years", err))
	}
	return years, nil
}

// Terms lists the terms within a year.
func (s *CatalogService) Terms(ctx context.Context, providerName, year string) ([]models.Term, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	terms, err := provider.ListTerms(ctx, year)
	s.observe(providerName, started, err)
	if err != nil {
		s.logger.Warn("list terms failed", zap.String("provider", providerName), zap.String("year", year), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to list terms", err))
	}
	return terms, nil
}

// Subjects lists the subjects offered in a term.
func (s *CatalogService) Subjects(ctx context.Context, providerName, termID string) ([]models.Subject, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	subjects, err := provider.ListSubjects(ctx, termID)
	s.observe(providerName, started, err)
	if err != nil {
		s.logger.Warn("list subjects failed", zap.String("provider", providerName), zap.String("term", termID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to list subjects", err))
	}
	return subjects, nil
}

// Courses lists the courses under a subject.
func (s *CatalogService) Courses(ctx context.Context, providerName, termID, subjectCode string) ([]models.Course, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	courses, err := provider.ListCourses(ctx, termID, subjectCode)
	s.observe(providerName, started, err)
	if err != nil {
		s.logger.Warn("list courses failed", zap.String("provider", providerName), zap.String("subject", subjectCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to list courses", err))
	}
	return courses, nil
}

// Sections lists the sections of a course.
func (s *CatalogService) Sections(ctx context.Context, providerName, termID, subjectCode, courseCode string) ([]models.Section, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	sections, err := provider.ListSections(ctx, termID, subjectCode, courseCode)
	s.observe(providerName, started, err)
	if err != nil {
		s.logger.Warn("list sections failed", zap.String("provider", providerName), zap.String("course", courseCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to list sections", err))
	}
	return sections, nil
}

// FindSection locates a single section by identifier. Match is
// case-insensitive on the section ID.
func (s *CatalogService) FindSection(ctx context.Context, providerName, termID, subjectCode, courseCode, sectionID string) (*models.Section, error) {
	sections, err := s.Sections(ctx, providerName, termID, subjectCode, courseCode)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(sectionID))
	for i := range sections {
		if strings.ToLower(strings.TrimSpace(sections[i].ID)) == want {
			return &sections[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found: "+sectionID)
}

// Outline fetches a provider's detailed per-section outline. Providers
// without outline support return a validation error.
func (s *CatalogService) Outline(ctx context.Context, providerName, year, term, dept, course, section string) (*models.Outline, error) {
	provider, err := s.resolve(providerName)
	if err != nil {
		return nil, err
	}
	outlines, ok := provider.(catalog.OutlineProvider)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provider does not publish outlines: "+providerName)
	}
	started := time.Now()
	outline, err := outlines.Outline(ctx, year, term, dept, course, section)
	s.observe(providerName, started, err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, upstreamMessage("failed to fetch outline", err))
	}
	return outline, nil
}
