package astro

// Pinda carries the weighted scalar strengths derived from a reduced grid.
type Pinda struct {
	Rasi    int `json:"rasi_pinda"`
	Graha   int `json:"graha_pinda"`
	Shuddha int `json:"shuddha_pinda"`
}

// ComputePinda derives the pinda scores for a target graha from its reduced
// grid. The rasi pinda weights every sign by the rasimana table; the graha
// pinda weights only the signs actually occupied by a graha, by that
// occupant's multiplier.
func ComputePinda(target Graha, reduced Grid, positions Positions) (Pinda, error) {
	if !target.Valid() {
		return Pinda{}, NewInvalidGrahaError(target.String())
	}
	for _, graha := range AllGrahas() {
		pos, ok := positions[graha]
		if !ok {
			return Pinda{}, NewIncompletePositionDataError("missing position for %s", graha)
		}
		if !ValidSign(pos.Sign) {
			return Pinda{}, NewIncompletePositionDataError("%s sign %d outside 0..11", graha, pos.Sign)
		}
	}

	rasi := 0
	for sign, bindus := range reduced {
		rasi += bindus * rasiMultipliers[sign]
	}

	graha := 0
	for _, occupant := range AllGrahas() {
		graha += reduced[positions[occupant].Sign] * grahaMultipliers[occupant]
	}

	return Pinda{
		Rasi:    rasi,
		Graha:   graha,
		Shuddha: rasi + graha,
	}, nil
}
