package astro

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHouseOf(t *testing.T) {
	tests := []struct {
		sign, ascendant, expected int
	}{
		{0, 0, 1},
		{6, 6, 1},
		{7, 6, 2},
		{5, 6, 12},
		{0, 6, 7},
		{11, 0, 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HouseOf(tt.sign, tt.ascendant),
			"sign %d from ascendant %d", tt.sign, tt.ascendant)
	}
}

func TestClassifySAVBindus(t *testing.T) {
	tests := []struct {
		bindus   int
		expected string
	}{
		{35, SAVStrong},
		{30, SAVStrong},
		{29, SAVModerate},
		{26, SAVModerate},
		{25, SAVWeak},
		{0, SAVWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifySAVBindus(tt.bindus), "bindus %d", tt.bindus)
	}
}

func TestClassifyBAVBindus(t *testing.T) {
	tests := []struct {
		bindus   int
		expected string
	}{
		{8, BAVExcellent},
		{5, BAVExcellent},
		{4, BAVGood},
		{3, BAVModerate},
		{2, BAVWeak},
		{0, BAVWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyBAVBindus(tt.bindus), "bindus %d", tt.bindus)
	}
}

func TestAnalyzeSAV(t *testing.T) {
	var sav Grid
	sav[0] = 32
	sav[3] = 20
	sav[6] = 28

	analysis := AnalyzeSAV(sav, 6)
	require.Len(t, analysis, 12)

	assert.Equal(t, SAVStrong, analysis[0].Strength)
	assert.Equal(t, 7, analysis[0].House)
	assert.Equal(t, "Aries", analysis[0].SignName)

	assert.Equal(t, SAVWeak, analysis[3].Strength)
	assert.Equal(t, 10, analysis[3].House)

	assert.Equal(t, SAVModerate, analysis[6].Strength)
	assert.Equal(t, 1, analysis[6].House)
}

func TestEvaluateTransit(t *testing.T) {
	tests := []struct {
		name           string
		bavBindus      int
		savBindus      int
		bavStrength    string
		savStrength    string
		combinedResult string
	}{
		// 5/8*0.6 + 30/56*0.4 = 0.5893, just under the highly favorable
		// floor.
		{"excellent and auspicious", 5, 30, BAVExcellent, TransitAuspicious, CombinedFavorable},
		{"top of both scales", 6, 40, BAVExcellent, TransitAuspicious, CombinedHighlyFavorable},
		{"good and neutral", 4, 27, BAVGood, TransitNeutral, CombinedFavorable},
		{"moderate and neutral", 3, 25, BAVModerate, TransitNeutral, CombinedMixed},
		{"weak everywhere", 1, 18, BAVWeak, TransitChallenging, CombinedChallenging},
		{"zero sign", 0, 0, BAVWeak, TransitChallenging, CombinedChallenging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bav, sav Grid
			bav[2] = tt.bavBindus
			sav[2] = tt.savBindus

			eval, err := EvaluateTransit(bav, sav, 2, Jupiter)
			require.NoError(t, err)
			assert.Equal(t, tt.bavBindus, eval.BAVBindus)
			assert.Equal(t, tt.savBindus, eval.SAVBindus)
			assert.Equal(t, tt.bavStrength, eval.BAVStrength)
			assert.Equal(t, tt.savStrength, eval.SAVStrength)
			assert.Equal(t, tt.combinedResult, eval.CombinedResult)
			assert.Equal(t, "Gemini", eval.SignName)
		})
	}
}

func TestEvaluateTransit_CombinedScore(t *testing.T) {
	var bav, sav Grid
	bav[0] = 4
	sav[0] = 28

	eval, err := EvaluateTransit(bav, sav, 0, Sun)
	require.NoError(t, err)

	// 4/8*0.6 + 28/56*0.4 = 0.3 + 0.2 = 0.5
	assert.True(t, eval.CombinedScore.Equal(decimal.NewFromFloat(0.5)),
		"got %s", eval.CombinedScore)
	assert.Equal(t, CombinedFavorable, eval.CombinedResult)
}

func TestEvaluateTransit_InvalidGraha(t *testing.T) {
	_, err := EvaluateTransit(Grid{}, Grid{}, 0, Graha(9))
	require.Error(t, err)
	assert.IsType(t, &InvalidGrahaError{}, err)
}

func TestEvaluateTransit_InvalidSign(t *testing.T) {
	_, err := EvaluateTransit(Grid{}, Grid{}, 12, Sun)
	require.Error(t, err)
	assert.IsType(t, &IncompletePositionDataError{}, err)
}
