package astro

// Trikona triads partition the twelve signs into four groups of mutual
// trines; lordship pairs share a ruling graha (the luminaries' two signs have
// no partner and are exempt).
var lordshipPairs = [5][2]int{{0, 7}, {1, 6}, {2, 5}, {8, 11}, {9, 10}}

// TrikonaShodhana applies the triangular reduction to a copy of the grid:
// for each triad {i, i+4, i+8} the triad minimum is subtracted from all three
// members. Afterwards every triad contains at least one zero, and re-applying
// the pass changes nothing.
func TrikonaShodhana(grid Grid) Grid {
	reduced := grid
	for i := 0; i < 4; i++ {
		a, b, c := i, i+4, i+8
		m := reduced[a]
		if reduced[b] < m {
			m = reduced[b]
		}
		if reduced[c] < m {
			m = reduced[c]
		}
		reduced[a] -= m
		reduced[b] -= m
		reduced[c] -= m
	}
	return reduced
}

// TieBreak selects which sign of an unoccupied lordship pair retains the
// pair minimum during ekadhipatya shodhana. Isolating the choice keeps the
// approximation swappable without touching the reduction control flow.
type TieBreak func(a, b, ascendantSign int) int

// NearerToAscendant retains the sign with the smaller circular distance from
// the ascendant, preferring the first of the pair on equal distance. This is
// a documented simplification of the classical rule, kept deliberately.
func NearerToAscendant(a, b, ascendantSign int) int {
	if circularDistance(a, ascendantSign) <= circularDistance(b, ascendantSign) {
		return a
	}
	return b
}

func circularDistance(a, b int) int {
	d := (a - b + 12) % 12
	if d > 6 {
		d = 12 - d
	}
	return d
}

// OccupiedSigns marks the signs holding at least one of the seven grahas.
// The ascendant does not count as an occupant.
func OccupiedSigns(positions Positions) [12]bool {
	var occupied [12]bool
	for _, graha := range AllGrahas() {
		if pos, ok := positions[graha]; ok && ValidSign(pos.Sign) {
			occupied[pos.Sign] = true
		}
	}
	return occupied
}

// EkadhipatyaShodhana applies the same-lordship reduction to a copy of an
// already trikona-reduced grid. Each of the five lordship pairs is resolved
// by a decision table keyed on the pair's occupancy:
//
//	both zero       -> no-op
//	both occupied   -> no-op
//	only a occupied -> b zeroed
//	only b occupied -> a zeroed
//	neither         -> the tie-break winner keeps the pair minimum, the other
//	                   sign is zeroed
//
// A nil tieBreak defaults to NearerToAscendant.
func EkadhipatyaShodhana(grid Grid, ascendantSign int, occupied [12]bool, tieBreak TieBreak) Grid {
	if tieBreak == nil {
		tieBreak = NearerToAscendant
	}
	reduced := grid
	for _, pair := range lordshipPairs {
		a, b := pair[0], pair[1]
		switch {
		case reduced[a] == 0 && reduced[b] == 0:
			// Nothing to reduce.
		case occupied[a] && occupied[b]:
			// Both signs tenanted; both values stand.
		case occupied[a]:
			reduced[b] = 0
		case occupied[b]:
			reduced[a] = 0
		default:
			minVal := reduced[a]
			if reduced[b] < minVal {
				minVal = reduced[b]
			}
			if tieBreak(a, b, ascendantSign) == a {
				reduced[a] = minVal
				reduced[b] = 0
			} else {
				reduced[b] = minVal
				reduced[a] = 0
			}
		}
	}
	return reduced
}

// ReduceGrid runs both shodhana passes over a raw grid.
func ReduceGrid(raw Grid, ascendantSign int, occupied [12]bool) Grid {
	return EkadhipatyaShodhana(TrikonaShodhana(raw), ascendantSign, occupied, nil)
}
