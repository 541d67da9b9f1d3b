package astro

// KakshyaWidth is the span of one sub-band in degrees; eight bands tile the
// 30 degree sign exactly.
const KakshyaWidth = 3.75

// KakshyaBand is one of the eight sub-divisions of a sign.
type KakshyaBand struct {
	Lord        Source  `json:"lord"`
	StartDegree float64 `json:"start_degree"`
	EndDegree   float64 `json:"end_degree"`
	HasBindu    bool    `json:"has_bindu"`
}

// SignKakshyas holds a sign's eight sub-bands in lordship order.
type SignKakshyas [8]KakshyaBand

// ComputeKakshya splits every sign into its eight sub-bands for a target
// graha. A band carries a bindu iff its lord's contribution for the target,
// applied from the lord's actual sign (the ascendant sign for the lagna),
// lands on the band's sign. Only raw contributions matter here; the
// reduction passes never feed this view.
func ComputeKakshya(target Graha, positions Positions, ascendantSign int) ([12]SignKakshyas, error) {
	var out [12]SignKakshyas
	if err := ValidatePositions(positions, ascendantSign); err != nil {
		return out, err
	}
	sources, ok := contributionTable[target]
	if !ok {
		return out, NewInvalidGrahaError(target.String())
	}

	// Precompute, per lord, the set of signs its contribution lands on.
	landed := make(map[Source][12]bool, 8)
	for _, lord := range kakshyaLords {
		var hits [12]bool
		from := sourceSign(lord, positions, ascendantSign)
		for _, offset := range sources[lord] {
			hits[(from+offset-1)%12] = true
		}
		landed[lord] = hits
	}

	for sign := 0; sign < 12; sign++ {
		for k, lord := range kakshyaLords {
			out[sign][k] = KakshyaBand{
				Lord:        lord,
				StartDegree: float64(k) * KakshyaWidth,
				EndDegree:   float64(k+1) * KakshyaWidth,
				HasBindu:    landed[lord][sign],
			}
		}
	}
	return out, nil
}

// KakshyaAt returns the index 0..7 of the sub-band a degree within a sign
// falls into.
func KakshyaAt(degree float64) int {
	if degree < 0 {
		return 0
	}
	k := int(degree / KakshyaWidth)
	if k > 7 {
		k = 7
	}
	return k
}
