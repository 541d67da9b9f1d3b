package astro

import (
	"github.com/shopspring/decimal"
)

// Totals status labels.
const (
	TotalsStrong   = "strong"
	TotalsModerate = "moderate"
	TotalsWeak     = "weak"
)

// Options selects which optional tiers a calculation produces.
type Options struct {
	IncludeShodhana bool
	IncludeKakshya  bool
}

// DefaultOptions returns the standard calculation options: reductions on,
// kakshya off.
func DefaultOptions() Options {
	return Options{IncludeShodhana: true}
}

// GrahaTotals summarizes one graha's grid total against its classical
// maximum. When reductions are enabled the total is taken from the reduced
// grid, so it reflects the points that survived shodhana.
type GrahaTotals struct {
	Total      int    `json:"total"`
	Maximum    int    `json:"maximum"`
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
}

// Result is the complete output of one ashtakavarga calculation. Every field
// is a fresh value; nothing here aliases caller state or survives the call.
type Result struct {
	AscendantSign int                    `json:"ascendant_sign"`
	BAV           map[Graha]Grid         `json:"bav"`
	SAV           Grid                   `json:"sav"`
	BAVShodhana   map[Graha]Grid         `json:"bav_shodhana,omitempty"`
	SAVShodhana   *Grid                  `json:"sav_shodhana,omitempty"`
	Pindas        map[Graha]Pinda        `json:"pindas,omitempty"`
	Kakshya       map[Graha][12]SignKakshyas `json:"kakshya,omitempty"`
	Analysis      []SignAnalysis         `json:"analysis"`
	Totals        map[Graha]GrahaTotals  `json:"totals"`
}

// Calculate runs the full pipeline: grids, optional reductions and pindas,
// optional kakshya, sign analysis and totals. It is a pure function of its
// inputs and the static tables; concurrent calls need no coordination.
func Calculate(positions Positions, ascendantSign int, opts Options) (*Result, error) {
	bav, sav, err := BuildGrids(positions, ascendantSign)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AscendantSign: ascendantSign,
		BAV:           bav,
		SAV:           sav,
		Analysis:      AnalyzeSAV(sav, ascendantSign),
	}

	totalsSource := bav
	if opts.IncludeShodhana {
		occupied := OccupiedSigns(positions)
		reduced := make(map[Graha]Grid, len(bav))
		for _, target := range AllGrahas() {
			reduced[target] = ReduceGrid(bav[target], ascendantSign, occupied)
		}
		reducedSAV := SumGrids(reduced)
		result.BAVShodhana = reduced
		result.SAVShodhana = &reducedSAV

		pindas := make(map[Graha]Pinda, len(reduced))
		for _, target := range AllGrahas() {
			pinda, err := ComputePinda(target, reduced[target], positions)
			if err != nil {
				return nil, err
			}
			pindas[target] = pinda
		}
		result.Pindas = pindas
		totalsSource = reduced
	}

	if opts.IncludeKakshya {
		kakshya := make(map[Graha][12]SignKakshyas, len(bav))
		for _, target := range AllGrahas() {
			bands, err := ComputeKakshya(target, positions, ascendantSign)
			if err != nil {
				return nil, err
			}
			kakshya[target] = bands
		}
		result.Kakshya = kakshya
	}

	totals := make(map[Graha]GrahaTotals, len(totalsSource))
	for _, target := range AllGrahas() {
		maximum := maxBindus[target]
		totals[target] = newGrahaTotals(totalsSource[target].Total(), maximum)
	}
	result.Totals = totals

	return result, nil
}

func newGrahaTotals(total, maximum int) GrahaTotals {
	percentage := int(decimal.NewFromInt(int64(total * 100)).
		Div(decimal.NewFromInt(int64(maximum))).
		Round(0).IntPart())

	status := TotalsModerate
	switch {
	case percentage >= 60:
		status = TotalsStrong
	case percentage <= 40:
		status = TotalsWeak
	}

	return GrahaTotals{
		Total:      total,
		Maximum:    maximum,
		Percentage: percentage,
		Status:     status,
	}
}
