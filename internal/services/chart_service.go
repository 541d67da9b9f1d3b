package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
	"github.com/NikitHamal/flashy-astro-go/internal/cache"
	"github.com/NikitHamal/flashy-astro-go/internal/database"
)

// ChartRepository abstracts chart persistence for the service.
type ChartRepository interface {
	Save(ctx context.Context, record *database.ChartRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*database.ChartRecord, error)
	ListRecent(ctx context.Context, limit int) ([]database.ChartRecord, error)
}

// AnalysisCache abstracts the result cache for the service.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*astro.Result, bool)
	Set(ctx context.Context, key string, result *astro.Result)
}

// TransitNotifier delivers transit alerts out of band.
type TransitNotifier interface {
	Enabled() bool
	NotifyTransitAlerts(ctx context.Context, graha astro.Graha, alerts []astro.TransitEvaluation) error
}

// ChartService orchestrates the engine, the result cache and persistence.
type ChartService struct {
	repo     ChartRepository
	cache    AnalysisCache
	scanner  *TransitScanner
	notifier TransitNotifier
	logger   *logrus.Logger
}

// NewChartService creates the chart analysis service. Repo and cache may be
// nil; the service then skips persistence and caching respectively.
func NewChartService(repo ChartRepository, analysisCache AnalysisCache, logger *logrus.Logger) *ChartService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ChartService{
		repo:   repo,
		cache:  analysisCache,
		logger: logger,
	}
}

// EnableTransitAlerts turns on background alert delivery for every fresh
// analysis.
func (s *ChartService) EnableTransitAlerts(scanner *TransitScanner, notifier TransitNotifier) {
	s.scanner = scanner
	s.notifier = notifier
}

// AnalyzeRequest is one chart analysis invocation.
type AnalyzeRequest struct {
	Positions     astro.Positions
	AscendantSign int
	Options       astro.Options
	Persist       bool
}

// AnalyzeResponse carries the result plus service metadata.
type AnalyzeResponse struct {
	ChartID *uuid.UUID    `json:"chart_id,omitempty"`
	Cached  bool          `json:"cached"`
	Result  *astro.Result `json:"result"`
}

// Analyze computes (or recalls) a full ashtakavarga analysis and optionally
// persists it.
func (s *ChartService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	key := cache.CacheKey(req.Positions, req.AscendantSign, req.Options)

	if s.cache != nil {
		if result, ok := s.cache.Get(ctx, key); ok {
			s.logger.WithField("key", key).Debug("Analysis cache hit")
			return &AnalyzeResponse{Result: result, Cached: true}, nil
		}
	}

	result, err := astro.Calculate(req.Positions, req.AscendantSign, req.Options)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}

	if s.scanner != nil && s.notifier != nil && s.notifier.Enabled() {
		go s.dispatchTransitAlerts(result)
	}

	response := &AnalyzeResponse{Result: result}

	if req.Persist && s.repo != nil {
		record, err := s.persist(ctx, req, result)
		if err != nil {
			// Persistence is best-effort; the computation itself succeeded.
			s.logger.WithError(err).Warn("Failed to persist chart analysis")
		} else {
			response.ChartID = &record.ID
		}
	}

	return response, nil
}

func (s *ChartService) persist(ctx context.Context, req AnalyzeRequest, result *astro.Result) (*database.ChartRecord, error) {
	positionsJSON, err := json.Marshal(req.Positions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal positions: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	record := &database.ChartRecord{
		AscendantSign: req.AscendantSign,
		Positions:     positionsJSON,
		Result:        resultJSON,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// dispatchTransitAlerts scans a fresh result and pushes any notable
// evaluations. Runs detached from the request, so it carries its own
// deadline.
func (s *ChartService) dispatchTransitAlerts(result *astro.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for graha, scan := range s.scanner.ScanAll(result) {
		alerts := AlertWorthy(scan)
		if len(alerts) == 0 {
			continue
		}
		if err := s.notifier.NotifyTransitAlerts(ctx, graha, alerts); err != nil {
			s.logger.WithError(err).WithField("graha", graha.String()).Warn("Failed to deliver transit alerts")
		}
	}
}

// TransitRequest scores one hypothetical transit against a chart.
type TransitRequest struct {
	Positions     astro.Positions
	AscendantSign int
	TransitGraha  astro.Graha
	TransitSign   int
	// UseShodhana scores against the reduced grids instead of the raw ones.
	UseShodhana bool
}

// EvaluateTransit builds the chart's grids and scores the requested transit.
func (s *ChartService) EvaluateTransit(ctx context.Context, req TransitRequest) (*astro.TransitEvaluation, error) {
	if !req.TransitGraha.Valid() {
		return nil, astro.NewInvalidGrahaError(req.TransitGraha.String())
	}

	result, err := s.gridsFor(ctx, req.Positions, req.AscendantSign, req.UseShodhana)
	if err != nil {
		return nil, err
	}

	bav := result.BAV[req.TransitGraha]
	sav := result.SAV
	if req.UseShodhana {
		bav = result.BAVShodhana[req.TransitGraha]
		sav = *result.SAVShodhana
	}

	eval, err := astro.EvaluateTransit(bav, sav, req.TransitSign, req.TransitGraha)
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

// Kakshya returns the sub-band view for one graha, or all seven when target
// is nil.
func (s *ChartService) Kakshya(ctx context.Context, positions astro.Positions, ascendantSign int, target *astro.Graha) (map[astro.Graha][12]astro.SignKakshyas, error) {
	targets := astro.AllGrahas()
	if target != nil {
		if !target.Valid() {
			return nil, astro.NewInvalidGrahaError(target.String())
		}
		targets = []astro.Graha{*target}
	}

	out := make(map[astro.Graha][12]astro.SignKakshyas, len(targets))
	for _, graha := range targets {
		bands, err := astro.ComputeKakshya(graha, positions, ascendantSign)
		if err != nil {
			return nil, err
		}
		out[graha] = bands
	}
	return out, nil
}

// GetChart fetches a persisted analysis.
func (s *ChartService) GetChart(ctx context.Context, id uuid.UUID) (*database.ChartRecord, error) {
	if s.repo == nil {
		return nil, database.ErrChartNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListCharts returns recently persisted analyses.
func (s *ChartService) ListCharts(ctx context.Context, limit int) ([]database.ChartRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// gridsFor reuses the analysis cache for grid lookups so repeated transit
// queries against the same chart stay cheap.
func (s *ChartService) gridsFor(ctx context.Context, positions astro.Positions, ascendantSign int, withShodhana bool) (*astro.Result, error) {
	opts := astro.Options{IncludeShodhana: withShodhana}
	key := cache.CacheKey(positions, ascendantSign, opts)

	if s.cache != nil {
		if result, ok := s.cache.Get(ctx, key); ok {
			return result, nil
		}
	}

	result, err := astro.Calculate(positions, ascendantSign, opts)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	return result, nil
}
