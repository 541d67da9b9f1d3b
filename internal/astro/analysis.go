package astro

import (
	"github.com/shopspring/decimal"
)

// Classification labels produced by the analyzer.
const (
	SAVStrong   = "strong"
	SAVModerate = "moderate"
	SAVWeak     = "weak"

	BAVExcellent = "excellent"
	BAVGood      = "good"
	BAVModerate  = "moderate"
	BAVWeak      = "weak"

	TransitAuspicious  = "auspicious"
	TransitNeutral     = "neutral"
	TransitChallenging = "challenging"

	CombinedHighlyFavorable = "highly_favorable"
	CombinedFavorable       = "favorable"
	CombinedMixed           = "mixed"
	CombinedChallenging     = "challenging"
)

// Combined transit score weights and normalization bounds. A sign holds at
// most 8 bindus in a single grid and at most 56 in the aggregate.
var (
	transitBAVWeight = decimal.NewFromFloat(0.6)
	transitSAVWeight = decimal.NewFromFloat(0.4)
	maxBAVPerSign    = decimal.NewFromInt(8)
	maxSAVPerSign    = decimal.NewFromInt(56)

	highlyFavorableFloor = decimal.NewFromFloat(0.60)
	favorableFloor       = decimal.NewFromFloat(0.45)
	mixedFloor           = decimal.NewFromFloat(0.35)
)

// HouseOf maps an absolute sign to a house number 1..12 counted from the
// ascendant sign.
func HouseOf(sign, ascendantSign int) int {
	return ((sign-ascendantSign+12)%12 + 1)
}

// ClassifySAVBindus labels an aggregate sign count. The thresholds assume a
// full 337-bindu grid averaging roughly 28 per sign.
func ClassifySAVBindus(bindus int) string {
	switch {
	case bindus >= 30:
		return SAVStrong
	case bindus <= 25:
		return SAVWeak
	default:
		return SAVModerate
	}
}

// ClassifyBAVBindus labels a single-graha sign count.
func ClassifyBAVBindus(bindus int) string {
	switch {
	case bindus >= 5:
		return BAVExcellent
	case bindus >= 4:
		return BAVGood
	case bindus >= 3:
		return BAVModerate
	default:
		return BAVWeak
	}
}

func classifyTransitSAV(bindus int) string {
	switch {
	case bindus >= 30:
		return TransitAuspicious
	case bindus >= 25:
		return TransitNeutral
	default:
		return TransitChallenging
	}
}

// SignAnalysis labels one sign of an aggregate grid relative to the
// ascendant.
type SignAnalysis struct {
	Sign     int    `json:"sign"`
	SignName string `json:"sign_name"`
	House    int    `json:"house"`
	Bindus   int    `json:"bindus"`
	Strength string `json:"strength"`
}

// AnalyzeSAV classifies all twelve signs of an aggregate grid.
func AnalyzeSAV(sav Grid, ascendantSign int) []SignAnalysis {
	out := make([]SignAnalysis, 12)
	for sign, bindus := range sav {
		out[sign] = SignAnalysis{
			Sign:     sign,
			SignName: SignName(sign),
			House:    HouseOf(sign, ascendantSign),
			Bindus:   bindus,
			Strength: ClassifySAVBindus(bindus),
		}
	}
	return out
}

// TransitEvaluation is the favorability verdict for one graha transiting one
// sign.
type TransitEvaluation struct {
	Graha          Graha           `json:"graha"`
	Sign           int             `json:"sign"`
	SignName       string          `json:"sign_name"`
	BAVBindus      int             `json:"bav_bindus"`
	SAVBindus      int             `json:"sav_bindus"`
	BAVStrength    string          `json:"bav_strength"`
	SAVStrength    string          `json:"sav_strength"`
	CombinedScore  decimal.Decimal `json:"combined_score"`
	CombinedResult string          `json:"combined_result"`
}

// EvaluateTransit scores a hypothetical transit of a graha through a sign
// against that graha's grid and the aggregate grid. The combined score
// blends the normalized counts 60/40 in the single grid's favor.
func EvaluateTransit(bav Grid, sav Grid, transitSign int, transitGraha Graha) (TransitEvaluation, error) {
	if !transitGraha.Valid() {
		return TransitEvaluation{}, NewInvalidGrahaError(transitGraha.String())
	}
	if !ValidSign(transitSign) {
		return TransitEvaluation{}, NewIncompletePositionDataError("transit sign %d outside 0..11", transitSign)
	}

	bavBindus := bav[transitSign]
	savBindus := sav[transitSign]

	bavScore := decimal.NewFromInt(int64(bavBindus)).Div(maxBAVPerSign)
	savScore := decimal.NewFromInt(int64(savBindus)).Div(maxSAVPerSign)
	combined := bavScore.Mul(transitBAVWeight).Add(savScore.Mul(transitSAVWeight))

	var result string
	switch {
	case combined.GreaterThanOrEqual(highlyFavorableFloor):
		result = CombinedHighlyFavorable
	case combined.GreaterThanOrEqual(favorableFloor):
		result = CombinedFavorable
	case combined.GreaterThanOrEqual(mixedFloor):
		result = CombinedMixed
	default:
		result = CombinedChallenging
	}

	return TransitEvaluation{
		Graha:          transitGraha,
		Sign:           transitSign,
		SignName:       SignName(transitSign),
		BAVBindus:      bavBindus,
		SAVBindus:      savBindus,
		BAVStrength:    ClassifyBAVBindus(bavBindus),
		SAVStrength:    classifyTransitSAV(savBindus),
		CombinedScore:  combined.Round(4),
		CombinedResult: result,
	}, nil
}
