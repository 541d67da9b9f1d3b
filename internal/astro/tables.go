package astro

// The contribution tables below follow Brihat Parashara Hora Shastra. For a
// target graha, each source grants one bindu in the listed houses counted
// from the source's own sign (1 = the sign itself). The per-target offset
// counts sum to the classical maxima: Sun 48, Moon 49, Mars 39, Mercury 54,
// Jupiter 56, Venus 52, Saturn 39.
var contributionTable = map[Graha]map[Source][]int{
	Sun: {
		SourceSun:     {1, 2, 4, 7, 8, 9, 10, 11},
		SourceMoon:    {3, 6, 10, 11},
		SourceMars:    {1, 2, 4, 7, 8, 9, 10, 11},
		SourceMercury: {3, 5, 6, 9, 10, 11, 12},
		SourceJupiter: {5, 6, 9, 11},
		SourceVenus:   {6, 7, 12},
		SourceSaturn:  {1, 2, 4, 7, 8, 9, 10, 11},
		SourceLagna:   {3, 4, 6, 10, 11, 12},
	},
	Moon: {
		SourceSun:     {3, 6, 7, 8, 10, 11},
		SourceMoon:    {1, 3, 6, 7, 10, 11},
		SourceMars:    {2, 3, 5, 6, 9, 10, 11},
		SourceMercury: {1, 3, 4, 5, 7, 8, 10, 11},
		SourceJupiter: {1, 4, 7, 8, 10, 11, 12},
		SourceVenus:   {3, 4, 5, 7, 9, 10, 11},
		SourceSaturn:  {3, 5, 6, 11},
		SourceLagna:   {3, 6, 10, 11},
	},
	Mars: {
		SourceSun:     {3, 5, 6, 10, 11},
		SourceMoon:    {3, 6, 11},
		SourceMars:    {1, 2, 4, 7, 8, 10, 11},
		SourceMercury: {3, 5, 6, 11},
		SourceJupiter: {6, 10, 11, 12},
		SourceVenus:   {6, 8, 11, 12},
		SourceSaturn:  {1, 4, 7, 8, 9, 10, 11},
		SourceLagna:   {1, 3, 6, 10, 11},
	},
	Mercury: {
		SourceSun:     {5, 6, 9, 11, 12},
		SourceMoon:    {2, 4, 6, 8, 10, 11},
		SourceMars:    {1, 2, 4, 7, 8, 9, 10, 11},
		SourceMercury: {1, 3, 5, 6, 9, 10, 11, 12},
		SourceJupiter: {6, 8, 11, 12},
		SourceVenus:   {1, 2, 3, 4, 5, 8, 9, 11},
		SourceSaturn:  {1, 2, 4, 7, 8, 9, 10, 11},
		SourceLagna:   {1, 2, 4, 6, 8, 10, 11},
	},
	Jupiter: {
		SourceSun:     {1, 2, 3, 4, 7, 8, 9, 10, 11},
		SourceMoon:    {2, 5, 7, 9, 11},
		SourceMars:    {1, 2, 4, 7, 8, 10, 11},
		SourceMercury: {1, 2, 4, 5, 6, 9, 10, 11},
		SourceJupiter: {1, 2, 3, 4, 7, 8, 10, 11},
		SourceVenus:   {2, 5, 6, 9, 10, 11},
		SourceSaturn:  {3, 5, 6, 12},
		SourceLagna:   {1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	Venus: {
		SourceSun:     {8, 11, 12},
		SourceMoon:    {1, 2, 3, 4, 5, 8, 9, 11, 12},
		SourceMars:    {3, 5, 6, 9, 11, 12},
		SourceMercury: {3, 5, 6, 9, 11},
		SourceJupiter: {5, 8, 9, 10, 11},
		SourceVenus:   {1, 2, 3, 4, 5, 8, 9, 10, 11},
		SourceSaturn:  {3, 4, 5, 8, 9, 10, 11},
		SourceLagna:   {1, 2, 3, 4, 5, 8, 9, 11},
	},
	Saturn: {
		SourceSun:     {1, 2, 4, 7, 8, 10, 11},
		SourceMoon:    {3, 6, 11},
		SourceMars:    {3, 5, 6, 10, 11, 12},
		SourceMercury: {6, 8, 9, 10, 11, 12},
		SourceJupiter: {5, 6, 11, 12},
		SourceVenus:   {6, 11, 12},
		SourceSaturn:  {3, 5, 6, 11},
		SourceLagna:   {1, 3, 4, 6, 10, 11},
	},
}

var maxBindus = map[Graha]int{
	Sun:     48,
	Moon:    49,
	Mars:    39,
	Mercury: 54,
	Jupiter: 56,
	Venus:   52,
	Saturn:  39,
}

// MaxBindus returns the fixed total of bindus a target graha's raw grid
// always sums to.
func MaxBindus(target Graha) (int, error) {
	m, ok := maxBindus[target]
	if !ok {
		return 0, NewInvalidGrahaError(target.String())
	}
	return m, nil
}

// ContributionOffsets returns a copy of the house offsets the source grants
// to the target graha.
func ContributionOffsets(target Graha, source Source) ([]int, error) {
	sources, ok := contributionTable[target]
	if !ok {
		return nil, NewInvalidGrahaError(target.String())
	}
	offsets := sources[source]
	out := make([]int, len(offsets))
	copy(out, offsets)
	return out, nil
}

// Rasimana multipliers per sign, Aries through Pisces.
var rasiMultipliers = [12]int{7, 10, 8, 4, 10, 5, 7, 8, 9, 5, 11, 12}

// Grahamana multipliers per occupying graha, Sun through Saturn.
var grahaMultipliers = map[Graha]int{
	Sun:     5,
	Moon:    5,
	Mars:    8,
	Mercury: 5,
	Jupiter: 10,
	Venus:   7,
	Saturn:  5,
}

// kakshyaLords is the fixed rulership sequence of the eight 3.75 degree
// sub-bands inside every sign.
var kakshyaLords = [8]Source{
	SourceSaturn, SourceJupiter, SourceMars, SourceSun,
	SourceVenus, SourceMercury, SourceMoon, SourceLagna,
}

// KakshyaLords returns the fixed sub-band rulership sequence.
func KakshyaLords() [8]Source {
	return kakshyaLords
}
