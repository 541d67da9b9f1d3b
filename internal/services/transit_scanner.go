package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

// TransitScanner sweeps every sign for every graha and maps out the
// favorability landscape of a computed chart.
type TransitScanner struct {
	logger *logrus.Logger
}

// NewTransitScanner creates a transit scanner.
func NewTransitScanner(logger *logrus.Logger) *TransitScanner {
	if logger == nil {
		logger = logrus.New()
	}
	return &TransitScanner{logger: logger}
}

// GrahaScan is the full 12-sign sweep for one graha.
type GrahaScan struct {
	Graha       astro.Graha               `json:"graha"`
	Evaluations [12]astro.TransitEvaluation `json:"evaluations"`
}

// ScanGraha evaluates one graha across all twelve signs.
func (ts *TransitScanner) ScanGraha(result *astro.Result, graha astro.Graha) (*GrahaScan, error) {
	if !graha.Valid() {
		return nil, astro.NewInvalidGrahaError(graha.String())
	}

	scan := &GrahaScan{Graha: graha}
	for sign := 0; sign < 12; sign++ {
		eval, err := astro.EvaluateTransit(result.BAV[graha], result.SAV, sign, graha)
		if err != nil {
			return nil, err
		}
		scan.Evaluations[sign] = eval
	}
	return scan, nil
}

// ScanAll sweeps all seven grahas concurrently. The per-graha scans touch
// disjoint grids of an immutable result, so they need no coordination beyond
// the final join.
func (ts *TransitScanner) ScanAll(result *astro.Result) map[astro.Graha]*GrahaScan {
	scans := make(map[astro.Graha]*GrahaScan, 7)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, graha := range astro.AllGrahas() {
		wg.Add(1)
		go func(graha astro.Graha) {
			defer wg.Done()
			scan, err := ts.ScanGraha(result, graha)
			if err != nil {
				ts.logger.WithError(err).WithField("graha", graha.String()).Warn("Transit scan failed")
				return
			}
			mu.Lock()
			scans[graha] = scan
			mu.Unlock()
		}(graha)
	}
	wg.Wait()

	return scans
}

// AlertWorthy filters a scan down to the signs worth notifying about: the
// strongly favorable and the challenging ones.
func AlertWorthy(scan *GrahaScan) []astro.TransitEvaluation {
	var alerts []astro.TransitEvaluation
	for _, eval := range scan.Evaluations {
		switch eval.CombinedResult {
		case astro.CombinedHighlyFavorable, astro.CombinedChallenging:
			alerts = append(alerts, eval)
		}
	}
	return alerts
}
