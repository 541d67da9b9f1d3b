package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/cache"
)

// CacheAdmin is the cache surface the admin endpoints need.
type CacheAdmin interface {
	Stats() cache.AnalysisCacheStats
	Clear(ctx context.Context) (int64, error)
}

type AdminHandler struct {
	cache  CacheAdmin
	logger *logrus.Logger
}

func NewAdminHandler(cacheAdmin CacheAdmin, logger *logrus.Logger) *AdminHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &AdminHandler{
		cache:  cacheAdmin,
		logger: logger,
	}
}

// GetCacheStats returns hit/miss counters for the analysis cache.
func (h *AdminHandler) GetCacheStats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     h.cache.Stats(),
		"timestamp": time.Now(),
	})
}

// ClearCache drops every cached analysis.
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache not configured"})
		return
	}

	removed, err := h.cache.Clear(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to clear analysis cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "cache cleared",
		"entries_removed": removed,
		"timestamp":       time.Now(),
	})
}
