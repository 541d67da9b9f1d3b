package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
	"github.com/NikitHamal/flashy-astro-go/internal/database"
	"github.com/NikitHamal/flashy-astro-go/internal/services"
	"github.com/NikitHamal/flashy-astro-go/pkg/ephemeris"
)

// ChartAnalyzer is the service surface the chart endpoints need.
type ChartAnalyzer interface {
	Analyze(ctx context.Context, req services.AnalyzeRequest) (*services.AnalyzeResponse, error)
	EvaluateTransit(ctx context.Context, req services.TransitRequest) (*astro.TransitEvaluation, error)
	Kakshya(ctx context.Context, positions astro.Positions, ascendantSign int, target *astro.Graha) (map[astro.Graha][12]astro.SignKakshyas, error)
	GetChart(ctx context.Context, id uuid.UUID) (*database.ChartRecord, error)
	ListCharts(ctx context.Context, limit int) ([]database.ChartRecord, error)
}

// ChartHandlerOptions carries service-level behavior settings into the
// endpoints.
type ChartHandlerOptions struct {
	// PersistByDefault stores analyses unless the request opts out.
	PersistByDefault bool
	// RecentChartsMax caps the list endpoint's limit parameter.
	RecentChartsMax int
}

type ChartHandler struct {
	service  ChartAnalyzer
	resolver ephemeris.Service
	opts     ChartHandlerOptions
	logger   *logrus.Logger
}

// NewChartHandler creates the chart endpoints. The resolver may be nil;
// birth-data requests then fail with 503.
func NewChartHandler(service ChartAnalyzer, resolver ephemeris.Service, opts ChartHandlerOptions, logger *logrus.Logger) *ChartHandler {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.RecentChartsMax <= 0 {
		opts.RecentChartsMax = 50
	}
	return &ChartHandler{
		service:  service,
		resolver: resolver,
		opts:     opts,
		logger:   logger,
	}
}

// PositionPayload is one placement in a request body. Pointers distinguish
// "absent" from zero values during binding.
type PositionPayload struct {
	Sign   *int     `json:"sign" binding:"required"`
	Degree *float64 `json:"degree" binding:"required"`
}

// BirthPayload lets a caller submit a birth moment instead of resolved
// positions; the external ephemeris service fills in the rest.
type BirthPayload struct {
	Datetime  time.Time `json:"datetime" binding:"required"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
}

type AshtakavargaRequest struct {
	Positions       map[string]PositionPayload `json:"positions"`
	Birth           *BirthPayload              `json:"birth"`
	AscendantSign   *int                       `json:"ascendant_sign"`
	IncludeShodhana *bool                      `json:"include_shodhana"`
	IncludeKakshya  bool                       `json:"include_kakshya"`
	Persist         *bool                      `json:"persist"`
}

type TransitEvaluationRequest struct {
	Positions     map[string]PositionPayload `json:"positions" binding:"required"`
	AscendantSign *int                       `json:"ascendant_sign" binding:"required"`
	TransitGraha  string                     `json:"transit_graha" binding:"required"`
	TransitSign   *int                       `json:"transit_sign" binding:"required"`
	UseShodhana   bool                       `json:"use_shodhana"`
}

type KakshyaRequest struct {
	Positions     map[string]PositionPayload `json:"positions" binding:"required"`
	AscendantSign *int                       `json:"ascendant_sign" binding:"required"`
	Graha         string                     `json:"graha"`
}

type ChartListResponse struct {
	Charts    []database.ChartRecord `json:"charts"`
	Count     int                    `json:"count"`
	Timestamp time.Time              `json:"timestamp"`
}

// Analyze runs a full ashtakavarga computation for the posted chart.
func (h *ChartHandler) Analyze(c *gin.Context) {
	var req AshtakavargaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	positions, ascendantSign, ok := h.resolveChartInput(c, &req)
	if !ok {
		return
	}

	opts := astro.DefaultOptions()
	if req.IncludeShodhana != nil {
		opts.IncludeShodhana = *req.IncludeShodhana
	}
	opts.IncludeKakshya = req.IncludeKakshya

	persist := h.opts.PersistByDefault
	if req.Persist != nil {
		persist = *req.Persist
	}

	response, err := h.service.Analyze(c.Request.Context(), services.AnalyzeRequest{
		Positions:     positions,
		AscendantSign: ascendantSign,
		Options:       opts,
		Persist:       persist,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// resolveChartInput produces the chart from either inline positions or birth
// data. It writes the error response itself and reports success via ok.
func (h *ChartHandler) resolveChartInput(c *gin.Context, req *AshtakavargaRequest) (astro.Positions, int, bool) {
	if req.Birth != nil && req.Positions != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide either positions or birth, not both"})
		return nil, 0, false
	}

	if req.Birth != nil {
		if h.resolver == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ephemeris service not configured"})
			return nil, 0, false
		}
		positions, ascendant, err := h.resolver.ResolveChart(c.Request.Context(), &ephemeris.PositionsRequest{
			Datetime:  req.Birth.Datetime,
			Latitude:  req.Birth.Latitude,
			Longitude: req.Birth.Longitude,
			Timezone:  req.Birth.Timezone,
		})
		if err != nil {
			h.respondError(c, err)
			return nil, 0, false
		}
		if req.AscendantSign != nil {
			ascendant = *req.AscendantSign
		}
		return positions, ascendant, true
	}

	if req.Positions == nil || req.AscendantSign == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "positions and ascendant_sign are required without birth data"})
		return nil, 0, false
	}

	positions, err := parsePositions(req.Positions)
	if err != nil {
		h.respondError(c, err)
		return nil, 0, false
	}
	return positions, *req.AscendantSign, true
}

// EvaluateTransit scores one hypothetical transit against the posted chart.
func (h *ChartHandler) EvaluateTransit(c *gin.Context) {
	var req TransitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	positions, err := parsePositions(req.Positions)
	if err != nil {
		h.respondError(c, err)
		return
	}

	graha, err := astro.ParseGraha(req.TransitGraha)
	if err != nil {
		h.respondError(c, err)
		return
	}

	eval, err := h.service.EvaluateTransit(c.Request.Context(), services.TransitRequest{
		Positions:     positions,
		AscendantSign: *req.AscendantSign,
		TransitGraha:  graha,
		TransitSign:   *req.TransitSign,
		UseShodhana:   req.UseShodhana,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// Kakshya returns the sub-band breakdown for one graha, or all seven when no
// graha is named.
func (h *ChartHandler) Kakshya(c *gin.Context) {
	var req KakshyaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	positions, err := parsePositions(req.Positions)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var target *astro.Graha
	if req.Graha != "" {
		graha, err := astro.ParseGraha(req.Graha)
		if err != nil {
			h.respondError(c, err)
			return
		}
		target = &graha
	}

	bands, err := h.service.Kakshya(c.Request.Context(), positions, *req.AscendantSign, target)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ascendant_sign": *req.AscendantSign,
		"kakshya":        bands,
	})
}

// GetChart fetches one persisted analysis by id.
func (h *ChartHandler) GetChart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chart id"})
		return
	}

	record, err := h.service.GetChart(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListCharts returns recently persisted analyses, newest first.
func (h *ChartHandler) ListCharts(c *gin.Context) {
	limit := 20
	if limit > h.opts.RecentChartsMax {
		limit = h.opts.RecentChartsMax
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > h.opts.RecentChartsMax {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("limit must be an integer between 1 and %d", h.opts.RecentChartsMax),
			})
			return
		}
		limit = parsed
	}

	charts, err := h.service.ListCharts(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if charts == nil {
		charts = []database.ChartRecord{}
	}

	c.JSON(http.StatusOK, ChartListResponse{
		Charts:    charts,
		Count:     len(charts),
		Timestamp: time.Now(),
	})
}

func (h *ChartHandler) respondError(c *gin.Context, err error) {
	var invalidGraha *astro.InvalidGrahaError
	var incomplete *astro.IncompletePositionDataError

	switch {
	case errors.As(err, &invalidGraha):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrChartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "chart not found"})
	default:
		h.logger.WithError(err).Error("Chart request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parsePositions(payload map[string]PositionPayload) (astro.Positions, error) {
	positions := make(astro.Positions, len(payload))
	for name, pos := range payload {
		graha, err := astro.ParseGraha(name)
		if err != nil {
			return nil, err
		}
		// The validator does not dive into map values, so check here.
		if pos.Sign == nil || pos.Degree == nil {
			return nil, astro.NewIncompletePositionDataError("position for %s missing sign or degree", name)
		}
		positions[graha] = astro.Position{Sign: *pos.Sign, Degree: *pos.Degree}
	}
	return positions, nil
}
