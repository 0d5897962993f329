package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

type storeStub struct {
	getErr error
	setErr error
	value  string
}

func (s *storeStub) Get(_ context.Context, _ string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	*(dest.(*string)) = s.value
	return nil
}

func (s *storeStub) Set(context.Context, string, interface{}) error {
	return s.setErr
}

func TestCacheServiceGetHit(t *testing.T) {
	svc := NewCacheService(&storeStub{value: "cached"}, NewMetricsService(), nil)

	var got string
	require.NoError(t, svc.Get(context.Background(), "k", &got))
	assert.Equal(t, "cached", got)
}

func TestCacheServiceGetMissPassesThrough(t *testing.T) {
	svc := NewCacheService(&storeStub{getErr: appErrors.ErrCacheMiss}, NewMetricsService(), nil)

	var got string
	err := svc.Get(context.Background(), "k", &got)
	assert.Equal(t, appErrors.ErrCacheMiss.Code, appErrors.FromError(err).Code)
}

func TestCacheServiceBackendFailureBecomesMiss(t *testing.T) {
	svc := NewCacheService(&storeStub{getErr: errors.New("connection refused")}, NewMetricsService(), nil)

	var got string
	err := svc.Get(context.Background(), "k", &got)
	assert.Equal(t, appErrors.ErrCacheMiss.Code, appErrors.FromError(err).Code)
}

func TestCacheServiceSetSwallowsFailure(t *testing.T) {
	svc := NewCacheService(&storeStub{setErr: errors.New("connection refused")}, NewMetricsService(), nil)
	assert.NoError(t, svc.Set(context.Background(), "k", "v"))
}
