package astro

import (
	"sync"
)

// Grid is a 12-slot bindu count indexed by absolute sign (0 = Aries).
type Grid [12]int

// Total returns the sum of all twelve entries.
func (g Grid) Total() int {
	total := 0
	for _, v := range g {
		total += v
	}
	return total
}

// ValidatePositions checks that all seven grahas carry well-formed positions
// and that the ascendant sign is a valid index. It is called before any grid
// is built; a failure rejects the whole calculation.
func ValidatePositions(positions Positions, ascendantSign int) error {
	if !ValidSign(ascendantSign) {
		return NewIncompletePositionDataError("ascendant sign %d outside 0..11", ascendantSign)
	}
	for _, graha := range AllGrahas() {
		pos, ok := positions[graha]
		if !ok {
			return NewIncompletePositionDataError("missing position for %s", graha)
		}
		if !ValidSign(pos.Sign) {
			return NewIncompletePositionDataError("%s sign %d outside 0..11", graha, pos.Sign)
		}
		if pos.Degree < 0 || pos.Degree >= 30 {
			return NewIncompletePositionDataError("%s degree %.4f outside [0,30)", graha, pos.Degree)
		}
	}
	return nil
}

// sourceSign resolves the sign a contribution source counts houses from.
func sourceSign(source Source, positions Positions, ascendantSign int) int {
	if graha, ok := source.Graha(); ok {
		return positions[graha].Sign
	}
	return ascendantSign
}

// BuildGrid computes the raw bhinnastakavarga grid for one target graha.
// Every (source, offset) pair lands on exactly one sign, so the grid total
// always equals the target's classical maximum.
func BuildGrid(target Graha, positions Positions, ascendantSign int) (Grid, error) {
	var grid Grid
	if err := ValidatePositions(positions, ascendantSign); err != nil {
		return grid, err
	}
	sources, ok := contributionTable[target]
	if !ok {
		return grid, NewInvalidGrahaError(target.String())
	}
	for _, source := range AllSources() {
		from := sourceSign(source, positions, ascendantSign)
		for _, offset := range sources[source] {
			grid[(from+offset-1)%12]++
		}
	}
	return grid, nil
}

// BuildGrids computes the seven raw bhinnastakavarga grids and their
// sarvastakavarga aggregate. The per-graha grids are independent of each
// other and are computed concurrently; the aggregate waits on the join.
func BuildGrids(positions Positions, ascendantSign int) (map[Graha]Grid, Grid, error) {
	if err := ValidatePositions(positions, ascendantSign); err != nil {
		return nil, Grid{}, err
	}

	bav := make(map[Graha]Grid, len(AllGrahas()))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, target := range AllGrahas() {
		wg.Add(1)
		go func(target Graha) {
			defer wg.Done()
			// Positions were validated above, so per-target errors cannot occur.
			grid, _ := BuildGrid(target, positions, ascendantSign)
			mu.Lock()
			bav[target] = grid
			mu.Unlock()
		}(target)
	}
	wg.Wait()

	return bav, SumGrids(bav), nil
}

// SumGrids aggregates per-graha grids sign-wise into a sarvastakavarga grid.
func SumGrids(bav map[Graha]Grid) Grid {
	var sav Grid
	for _, grid := range bav {
		for sign, v := range grid {
			sav[sign] += v
		}
	}
	return sav
}
