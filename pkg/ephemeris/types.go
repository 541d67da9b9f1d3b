package ephemeris

import "time"

// HealthResponse is the resolver's health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// PositionsRequest asks the resolver to compute zodiacal positions for a
// birth moment and place.
type PositionsRequest struct {
	Datetime  time.Time `json:"datetime"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone,omitempty"`
}

// BodyPosition is a single resolved placement.
type BodyPosition struct {
	Sign   int     `json:"sign"`
	Degree float64 `json:"degree"`
}

// PositionsResponse carries the resolved chart: the seven graha placements
// keyed by lowercase name, plus the ascendant.
type PositionsResponse struct {
	Positions map[string]BodyPosition `json:"positions"`
	Ascendant BodyPosition            `json:"ascendant"`
	Timestamp time.Time               `json:"timestamp"`
}

// ErrorResponse is the resolver's error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
