package forecast

import "fmt"

// Defaults applied when the provider omits optional fields. Kept as named
// policy here so the assessor never has to guess at zero values.
const (
	DefaultVisibilityM = 10000
	DefaultRainMM      = 0
)

// Entry is one raw OpenWeatherMap forecast block. Timestamps arrive as
// "YYYY-MM-DD HH:MM:SS" strings in dt_txt.
type Entry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility,omitempty"`
	Rain       *struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain,omitempty"`
}

// Summary is the compact per-slot projection of an Entry.
type Summary struct {
	Description string
	TempC       float64
	WindMS      float64
	VisibilityM float64
	RainMM      float64 // accumulation over the 3h block
}

// Summarize projects a raw entry into a Summary. Visibility and rain are
// optional in the provider payload and default here; a missing weather
// description is a malformed entry and is never defaulted.
func Summarize(e Entry) (Summary, error) {
	if len(e.Weather) == 0 {
		return Summary{}, fmt.Errorf("forecast entry %q has no weather description", e.DtTxt)
	}

	s := Summary{
		Description: e.Weather[0].Description,
		TempC:       e.Main.Temp,
		WindMS:      e.Wind.Speed,
		VisibilityM: DefaultVisibilityM,
		RainMM:      DefaultRainMM,
	}
	if e.Visibility != nil {
		s.VisibilityM = *e.Visibility
	}
	if e.Rain != nil {
		s.RainMM = e.Rain.ThreeH
	}
	return s, nil
}

// SummarizeSlots projects every matched entry, keyed by its slot label.
func SummarizeSlots(slots map[string]Entry) (map[string]Summary, error) {
	out := make(map[string]Summary, len(slots))
	for label, entry := range slots {
		s, err := Summarize(entry)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", label, err)
		}
		out[label] = s
	}
	return out, nil
}
