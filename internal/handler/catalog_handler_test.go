package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

type catalogServiceStub struct {
	years    []string
	terms    []models.Term
	sections []models.Section
	err      error
}

func (s *catalogServiceStub) Providers() []string { return []string{"sfu", "ubc"} }

func (s *catalogServiceStub) Years(context.Context, string) ([]string, error) {
	return s.years, s.err
}

func (s *catalogServiceStub) Terms(context.Context, string, string) ([]models.Term, error) {
	return s.terms, s.err
}

func (s *catalogServiceStub) Subjects(context.Context, string, string) ([]models.Subject, error) {
	return nil, s.err
}

func (s *catalogServiceStub) Courses(context.Context, string, string, string) ([]models.Course, error) {
	return nil, s.err
}

func (s *catalogServiceStub) Sections(context.Context, string, string, string, string) ([]models.Section, error) {
	return s.sections, s.err
}

func (s *catalogServiceStub) Outline(context.Context, string, string, string, string, string, string) (*models.Outline, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Outline{}, nil
}

type invalidatorStub struct {
	patterns []string
	err      error
}

func (s *invalidatorStub) DeleteByPattern(_ context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	return s.err
}

func buildCatalogRouter(svc *catalogServiceStub, cache cacheInvalidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(svc, cache)
	router := gin.New()
	router.GET("/providers", h.Providers)
	router.GET("/providers/:provider/years", h.Years)
	router.GET("/providers/:provider/terms/:termId/subjects/:subject/courses/:course/sections", h.Sections)
	router.GET("/providers/:provider/outline", h.Outline)
	router.DELETE("/providers/:provider/cache", h.InvalidateCache)
	return router
}

func TestCatalogHandlerListsProviders(t *testing.T) {
	router := buildCatalogRouter(&catalogServiceStub{}, nil)
	req, _ := http.NewRequest(http.MethodGet, "/providers", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"sfu"`)
}

func TestCatalogHandlerNavigationFailSoft(t *testing.T) {
	svc := &catalogServiceStub{
		err: appErrors.Clone(appErrors.ErrUpstream, "boom"),
	}
	router := buildCatalogRouter(svc, nil)

	t.Run("years degrade to empty list", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/providers/sfu/years", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"data":[]`)
	})

	t.Run("sections degrade to empty list", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/providers/sfu/terms/2025-fall/subjects/cmpt/courses/120/sections", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"data":[]`)
	})

	t.Run("outline stays strict", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/providers/sfu/outline?year=2025&term=fall&dept=cmpt&course=120&section=d100", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadGateway, resp.Code)
	})
}

func TestCatalogHandlerUnknownProvider(t *testing.T) {
	svc := &catalogServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "unknown provider: nope")}
	router := buildCatalogRouter(svc, nil)
	req, _ := http.NewRequest(http.MethodGet, "/providers/nope/years", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCatalogHandlerInvalidateCache(t *testing.T) {
	t.Run("drops the provider's keys", func(t *testing.T) {
		cache := &invalidatorStub{}
		router := buildCatalogRouter(&catalogServiceStub{}, cache)
		req, _ := http.NewRequest(http.MethodDelete, "/providers/sfu/cache", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNoContent, resp.Code)
		require.Equal(t, []string{"sfu:*"}, cache.patterns)
	})

	t.Run("unsupported without a pattern-capable backend", func(t *testing.T) {
		router := buildCatalogRouter(&catalogServiceStub{}, nil)
		req, _ := http.NewRequest(http.MethodDelete, "/providers/sfu/cache", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
