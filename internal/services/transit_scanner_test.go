package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

func scannedResult(t *testing.T) *astro.Result {
	t.Helper()
	result, err := astro.Calculate(servicePositions(), 6, astro.DefaultOptions())
	require.NoError(t, err)
	return result
}

func TestTransitScanner_ScanGraha(t *testing.T) {
	ts := NewTransitScanner(nil)
	result := scannedResult(t)

	scan, err := ts.ScanGraha(result, astro.Jupiter)
	require.NoError(t, err)
	assert.Equal(t, astro.Jupiter, scan.Graha)

	for sign := 0; sign < 12; sign++ {
		eval := scan.Evaluations[sign]
		assert.Equal(t, sign, eval.Sign)
		assert.Equal(t, result.BAV[astro.Jupiter][sign], eval.BAVBindus, "sign %d", sign)
		assert.Equal(t, result.SAV[sign], eval.SAVBindus, "sign %d", sign)
		assert.NotEmpty(t, eval.CombinedResult, "sign %d", sign)
	}
}

func TestTransitScanner_ScanGraha_Invalid(t *testing.T) {
	ts := NewTransitScanner(nil)

	_, err := ts.ScanGraha(scannedResult(t), astro.Graha(-3))
	require.Error(t, err)
	assert.IsType(t, &astro.InvalidGrahaError{}, err)
}

func TestTransitScanner_ScanAll(t *testing.T) {
	ts := NewTransitScanner(nil)
	result := scannedResult(t)

	scans := ts.ScanAll(result)
	require.Len(t, scans, 7)

	// Concurrent sweep must agree with the sequential one.
	for _, graha := range astro.AllGrahas() {
		sequential, err := ts.ScanGraha(result, graha)
		require.NoError(t, err)
		assert.Equal(t, sequential, scans[graha], "%s", graha)
	}
}

func TestAlertWorthy(t *testing.T) {
	scan := &GrahaScan{Graha: astro.Mars}
	for sign := 0; sign < 12; sign++ {
		scan.Evaluations[sign] = astro.TransitEvaluation{
			Sign:           sign,
			CombinedResult: astro.CombinedMixed,
		}
	}
	scan.Evaluations[2].CombinedResult = astro.CombinedHighlyFavorable
	scan.Evaluations[5].CombinedResult = astro.CombinedChallenging
	scan.Evaluations[9].CombinedResult = astro.CombinedFavorable

	alerts := AlertWorthy(scan)
	require.Len(t, alerts, 2)
	assert.Equal(t, 2, alerts[0].Sign)
	assert.Equal(t, 5, alerts[1].Sign)
}

func TestAlertWorthy_Empty(t *testing.T) {
	scan := &GrahaScan{Graha: astro.Moon}
	for sign := 0; sign < 12; sign++ {
		scan.Evaluations[sign] = astro.TransitEvaluation{CombinedResult: astro.CombinedMixed}
	}
	assert.Empty(t, AlertWorthy(scan))
}
