package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/catalog"
	"github.com/noah-isme/course-compass/internal/models"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// downProvider fails every catalog call with the configured error.
type downProvider struct {
	name string
	err  error
}

func (p *downProvider) Name() string { return p.name }

func (p *downProvider) ListYears(context.Context) ([]string, error) { return nil, p.err }

func (p *downProvider) ListTerms(context.Context, string) ([]models.Term, error) {
	return nil, p.err
}

func (p *downProvider) ListSubjects(context.Context, string) ([]models.Subject, error) {
	return nil, p.err
}

func (p *downProvider) ListCourses(context.Context, string, string) ([]models.Course, error) {
	return nil, p.err
}

func (p *downProvider) ListSections(context.Context, string, string, string) ([]models.Section, error) {
	return nil, p.err
}

func (p *downProvider) Outline(context.Context, string, string, string, string, string) (*models.Outline, error) {
	return nil, p.err
}

func TestCatalogServiceUpstreamErrorCarriesStatus(t *testing.T) {
	provider := &downProvider{
		name: "sfu",
		err:  &catalog.ProviderHTTPError{Provider: "sfu", Status: 503, Body: "maintenance window"},
	}
	svc := NewCatalogService(catalog.NewRegistry(provider), nil, nil)
	ctx := context.Background()

	t.Run("section lookup", func(t *testing.T) {
		_, err := svc.FindSection(ctx, "sfu", "2025-fall", "cmpt", "120", "d100")
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
		assert.Contains(t, appErr.Message, "503")
		assert.Contains(t, appErr.Message, "maintenance window")
	})

	t.Run("outline fetch", func(t *testing.T) {
		_, err := svc.Outline(ctx, "sfu", "2025", "fall", "cmpt", "120", "d100")
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
		assert.Contains(t, appErr.Message, "503")
	})
}

func TestCatalogServiceMessageWithoutHTTPDetail(t *testing.T) {
	provider := &downProvider{name: "sfu", err: context.DeadlineExceeded}
	svc := NewCatalogService(catalog.NewRegistry(provider), nil, nil)

	_, err := svc.Sections(context.Background(), "sfu", "2025-fall", "cmpt", "120")
	require.Error(t, err)
	assert.Equal(t, "failed to list sections", appErrors.FromError(err).Message)
}

func TestCatalogServiceUnknownProvider(t *testing.T) {
	svc := NewCatalogService(catalog.NewRegistry(), nil, nil)

	_, err := svc.Years(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
