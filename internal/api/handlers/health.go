package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/NikitHamal/flashy-astro-go/pkg/ephemeris"
)

var startTime = time.Now()

// DependencyChecker is anything that can report its own liveness.
type DependencyChecker interface {
	HealthCheck(ctx context.Context) error
}

// EphemerisChecker reports the position resolver's liveness.
type EphemerisChecker interface {
	HealthCheck(ctx context.Context) (*ephemeris.HealthResponse, error)
}

type HealthHandler struct {
	db        DependencyChecker
	redis     DependencyChecker
	ephemeris EphemerisChecker
	version   string
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
}

type SystemHealthResponse struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	MemoryUsedMB  uint64    `json:"memory_used_mb"`
	MemoryTotalMB uint64    `json:"memory_total_mb"`
	Goroutines    int       `json:"goroutines"`
	Hostname      string    `json:"hostname"`
	Platform      string    `json:"platform"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
}

func NewHealthHandler(db DependencyChecker, redis DependencyChecker, ephemeris EphemerisChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		ephemeris: ephemeris,
		version:   version,
	}
}

// HealthCheck reports overall service health plus each dependency.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	services := make(map[string]string)

	services["database"] = checkDependency(ctx, h.db)
	services["redis"] = checkDependency(ctx, h.redis)
	if h.ephemeris != nil {
		if _, err := h.ephemeris.HealthCheck(ctx); err != nil {
			services["ephemeris"] = "unhealthy: " + err.Error()
		} else {
			services["ephemeris"] = "healthy"
		}
	} else {
		services["ephemeris"] = "unhealthy: not configured"
	}

	overallStatus := "healthy"
	httpStatus := http.StatusOK
	for _, status := range services {
		if status != "healthy" {
			overallStatus = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Services:  services,
		Version:   h.version,
		Uptime:    time.Since(startTime).String(),
	})
}

// SystemHealth reports host-level resource usage.
func (h *HealthHandler) SystemHealth(c *gin.Context) {
	ctx := c.Request.Context()

	response := SystemHealthResponse{
		Timestamp:  time.Now(),
		Goroutines: runtime.NumGoroutine(),
	}

	if cpuPercent, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(cpuPercent) > 0 {
		response.CPUPercent = cpuPercent[0]
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		response.MemoryPercent = memInfo.UsedPercent
		response.MemoryUsedMB = memInfo.Used / 1024 / 1024
		response.MemoryTotalMB = memInfo.Total / 1024 / 1024
	}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		response.Hostname = hostInfo.Hostname
		response.Platform = hostInfo.Platform
		response.UptimeSeconds = hostInfo.Uptime
	}

	c.JSON(http.StatusOK, response)
}

func checkDependency(ctx context.Context, dep DependencyChecker) string {
	if dep == nil {
		return "unhealthy: not configured"
	}
	if err := dep.HealthCheck(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
