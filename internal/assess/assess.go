package assess

import (
	"fmt"
	"strings"

	"motoweather/internal/common"
	"motoweather/internal/forecast"
)

// Thresholds holds the fixed safety limits for riding. All values are
// configuration, not hardcoded constants scattered through the checks.
type Thresholds struct {
	MinTempC       float64
	MaxWindMS      float64
	MinVisibilityM float64
	// RiskyRainMM flags a slot when its 3h accumulation reaches this value.
	// The boundary is inclusive: exactly RiskyRainMM is already a violation.
	RiskyRainMM float64

	// Phrases matched case-insensitively as substrings of the description.
	BadWeather    []string
	DangerousRain []string
}

// DefaultThresholds returns the stock riding limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTempC:       5,
		MaxWindMS:      20,
		MinVisibilityM: 3000,
		RiskyRainMM:    2.0,
		BadWeather:     []string{"snow", "thunderstorm", "hail"},
		DangerousRain:  []string{"heavy intensity rain", "very heavy rain", "extreme rain"},
	}
}

// Result is the safety verdict across all slots. Safe is false exactly when
// Reasons is non-empty.
type Result struct {
	Safe    bool
	Reasons []string
}

// Evaluate applies every rule to every slot. Slots are visited in the given
// order so the reasons list is deterministic; within a slot the rule order is
// temperature, wind, weather phrase, visibility, rain. Rules are independent:
// one slot can contribute several reasons. An empty summary map yields a
// vacuously safe result.
func Evaluate(order []string, summaries map[string]forecast.Summary, th Thresholds) Result {
	res := Result{Safe: true}

	for _, slot := range order {
		s, ok := summaries[slot]
		if !ok {
			continue
		}

		if s.TempC < th.MinTempC {
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: Temperature too low (%v°C)", slot, s.TempC))
			res.Safe = false
		}
		if s.WindMS > th.MaxWindMS {
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: Wind speed too high (%v m/s)", slot, s.WindMS))
			res.Safe = false
		}
		phrases := append(append([]string{}, th.BadWeather...), th.DangerousRain...)
		if common.ContainsAnyFold(s.Description, phrases...) {
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: Dangerous weather - %s", slot, strings.ToLower(s.Description)))
			res.Safe = false
		}
		if s.VisibilityM < th.MinVisibilityM {
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: Poor visibility (%v m)", slot, s.VisibilityM))
			res.Safe = false
		}
		if s.RainMM >= th.RiskyRainMM {
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: Heavy rain (%v mm)", slot, s.RainMM))
			res.Safe = false
		}
	}

	return res
}
