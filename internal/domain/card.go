package domain

// NoData is substituted for any card field the model reply did not yield.
const NoData = "no data"

// Intensity selects the tone directive given to the text model.
type Intensity string

const (
	IntensityLight Intensity = "light"
	IntensityMild  Intensity = "mild"
	IntensitySpicy Intensity = "spicy"
)

// ParseIntensity maps a request value to a known intensity, defaulting to mild.
func ParseIntensity(value string) Intensity {
	switch Intensity(value) {
	case IntensityLight, IntensitySpicy:
		return Intensity(value)
	default:
		return IntensityMild
	}
}

// RoastCard is the structured parody card extracted from the model reply.
// Every field is non-empty; extraction failures are replaced with NoData.
type RoastCard struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Ability     string `json:"ability"`
	Attack      string `json:"attack"`
	Resistance  string `json:"resistance"`
	Weakness    string `json:"weakness"`
	Bonuses     string `json:"bonuses"`
	SpecialMove string `json:"specialMove"`
	Description string `json:"description"`
}
