package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/NikitHamal/flashy-astro-go/internal/cache"
)

type MockCacheAdmin struct {
	mock.Mock
}

func (m *MockCacheAdmin) Stats() cache.AnalysisCacheStats {
	args := m.Called()
	return args.Get(0).(cache.AnalysisCacheStats)
}

func (m *MockCacheAdmin) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupAdminRouter(cacheAdmin CacheAdmin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(cacheAdmin, nil)
	router := gin.New()
	router.GET("/admin/cache/stats", handler.GetCacheStats)
	router.DELETE("/admin/cache", handler.ClearCache)
	return router
}

func TestAdminHandler_GetCacheStats(t *testing.T) {
	mockCache := new(MockCacheAdmin)
	mockCache.On("Stats").Return(cache.AnalysisCacheStats{Hits: 7, Misses: 3})
	router := setupAdminRouter(mockCache)

	req := httptest.NewRequest(http.MethodGet, "/admin/cache/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hits":7`)
	mockCache.AssertExpectations(t)
}

func TestAdminHandler_ClearCache(t *testing.T) {
	mockCache := new(MockCacheAdmin)
	mockCache.On("Clear", mock.Anything).Return(int64(12), nil)
	router := setupAdminRouter(mockCache)

	req := httptest.NewRequest(http.MethodDelete, "/admin/cache", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries_removed":12`)
	mockCache.AssertExpectations(t)
}

func TestAdminHandler_ClearCache_Error(t *testing.T) {
	mockCache := new(MockCacheAdmin)
	mockCache.On("Clear", mock.Anything).Return(int64(0), errors.New("redis down"))
	router := setupAdminRouter(mockCache)

	req := httptest.NewRequest(http.MethodDelete, "/admin/cache", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminHandler_NotConfigured(t *testing.T) {
	router := setupAdminRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/cache/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
