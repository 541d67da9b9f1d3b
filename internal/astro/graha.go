package astro

import "fmt"

// Graha identifies one of the seven classical bodies used in ashtakavarga.
type Graha int

const (
	Sun Graha = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
)

var grahaNames = [7]string{"sun", "moon", "mars", "mercury", "jupiter", "venus", "saturn"}

// AllGrahas returns the seven grahas in canonical order.
func AllGrahas() []Graha {
	return []Graha{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}
}

// Valid reports whether g is one of the seven recognized grahas.
func (g Graha) Valid() bool {
	return g >= Sun && g <= Saturn
}

func (g Graha) String() string {
	if !g.Valid() {
		return fmt.Sprintf("graha(%d)", int(g))
	}
	return grahaNames[g]
}

// MarshalText implements encoding.TextMarshaler so grahas can key JSON maps.
func (g Graha) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, NewInvalidGrahaError(fmt.Sprintf("graha(%d)", int(g)))
	}
	return []byte(grahaNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Graha) UnmarshalText(text []byte) error {
	parsed, err := ParseGraha(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGraha resolves a lowercase graha name to its identifier.
//
// Parameters:
//   - name: The graha name, e.g. "jupiter".
//
// Returns:
//   - The matching Graha, or an InvalidGrahaError for unrecognized names.
func ParseGraha(name string) (Graha, error) {
	for i, n := range grahaNames {
		if n == name {
			return Graha(i), nil
		}
	}
	return 0, NewInvalidGrahaError(name)
}

// Source identifies one of the eight contribution sources: the seven grahas
// plus the lagna (ascendant). The same closed set drives grid building,
// reduction occupancy and kakshya lordship.
type Source int

const (
	SourceSun Source = iota
	SourceMoon
	SourceMars
	SourceMercury
	SourceJupiter
	SourceVenus
	SourceSaturn
	SourceLagna
)

// AllSources returns the eight sources, grahas first, lagna last.
func AllSources() []Source {
	return []Source{
		SourceSun, SourceMoon, SourceMars, SourceMercury,
		SourceJupiter, SourceVenus, SourceSaturn, SourceLagna,
	}
}

func (s Source) String() string {
	if s == SourceLagna {
		return "lagna"
	}
	if s >= SourceSun && s <= SourceSaturn {
		return grahaNames[s]
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	if s < SourceSun || s > SourceLagna {
		return nil, fmt.Errorf("unrecognized source: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	name := string(text)
	if name == "lagna" {
		*s = SourceLagna
		return nil
	}
	g, err := ParseGraha(name)
	if err != nil {
		return fmt.Errorf("unrecognized source: %s", name)
	}
	*s = Source(g)
	return nil
}

// Graha returns the graha backing this source. The second return value is
// false for the lagna, which has no body of its own.
func (s Source) Graha() (Graha, bool) {
	if s >= SourceSun && s <= SourceSaturn {
		return Graha(s), true
	}
	return 0, false
}

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignName returns the display name for a sign index 0..11.
func SignName(sign int) string {
	if sign < 0 || sign > 11 {
		return fmt.Sprintf("sign(%d)", sign)
	}
	return signNames[sign]
}

// ValidSign reports whether sign is a zodiacal index 0..11.
func ValidSign(sign int) bool {
	return sign >= 0 && sign <= 11
}

// Position is a body's resolved zodiacal placement: a sign index and the
// degree travelled within that sign.
type Position struct {
	Sign   int     `json:"sign"`
	Degree float64 `json:"degree"`
}

// Positions maps each graha to its resolved position. All seven grahas must
// be present for any calculation.
type Positions map[Graha]Position
