package narrative

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"motoweather/internal/forecast"
)

const systemInstruction = "You help a motorbike commuter decide whether to ride based on weather."

// heavyRainTotalMM sets the narrative tone for total daily rain. It is a
// different quantity than the per-slot safety threshold and the two are kept
// separate on purpose: one shapes wording, the other is a hard rule.
const heavyRainTotalMM = 5.0

// Digest aggregates the day's summary records for the narrative prompt.
type Digest struct {
	Date        string
	AvgTempC    float64 // rounded to 1 decimal
	MaxWindMS   float64
	TotalRainMM float64 // rounded to 1 decimal
	Conditions  []string
}

// BuildDigest computes the aggregate statistics across all summary records.
// The description set is deduplicated; its order is not stable. Must not be
// called with an empty map — the pipeline guards that state upstream.
func BuildDigest(summaries map[string]forecast.Summary, now time.Time) Digest {
	var (
		sumTemp   float64
		maxWind   float64
		totalRain float64
	)
	seen := make(map[string]struct{})
	var conditions []string

	for _, s := range summaries {
		sumTemp += s.TempC
		if s.WindMS > maxWind {
			maxWind = s.WindMS
		}
		totalRain += s.RainMM

		if _, ok := seen[s.Description]; !ok {
			seen[s.Description] = struct{}{}
			conditions = append(conditions, s.Description)
		}
	}

	n := float64(len(summaries))

	return Digest{
		Date:        now.Format("Monday 02 January 2006"),
		AvgTempC:    round1(sumTemp / n),
		MaxWindMS:   maxWind,
		TotalRainMM: round1(totalRain),
		Conditions:  conditions,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Completer is the outbound text-generation contract.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}

// Generator asks the text-generation service for a ride-safety narrative
// terminated by a machine-readable decision tag.
type Generator struct {
	completer   Completer
	temperature float32
	safeTag     string
	notSafeTag  string
}

// NewGenerator creates a Generator using the given tags as the literal
// terminal markers the model is instructed to emit.
func NewGenerator(completer Completer, temperature float32, safeTag, notSafeTag string) *Generator {
	return &Generator{
		completer:   completer,
		temperature: temperature,
		safeTag:     safeTag,
		notSafeTag:  notSafeTag,
	}
}

// Narrate requests the natural-language explanation. It always returns a
// usable text value: if the outbound call fails, the returned string embeds
// the failure so the decision extractor downstream classifies it as unclear
// rather than anything crashing on a missing response.
func (g *Generator) Narrate(ctx context.Context, digest Digest, reasons []string) string {
	prompt := g.buildPrompt(digest, reasons)

	log.Println("INFO: sending summary request to text-generation service")
	text, err := g.completer.Complete(ctx, systemInstruction, prompt, g.temperature)
	if err != nil {
		log.Printf("ERROR: narrative generation failed: %v", err)
		return fmt.Sprintf("(AI summary failed): %v", err)
	}
	return text
}

func (g *Generator) buildPrompt(digest Digest, reasons []string) string {
	rainDesc := "no rain"
	if digest.TotalRainMM > heavyRainTotalMM {
		rainDesc = "heavy rain expected"
	} else if digest.TotalRainMM > 0 {
		rainDesc = "some light rain expected"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful motorbike safety assistant.\n\n")
	fmt.Fprintf(&b, "Today is %s.\n\n", digest.Date)
	fmt.Fprintf(&b, "The weather forecast shows temperatures around %.1f°C, maximum wind speeds up to %v m/s, and %s.\n",
		digest.AvgTempC, digest.MaxWindMS, rainDesc)
	fmt.Fprintf(&b, "Weather conditions include: %s.\n\n", strings.Join(digest.Conditions, ", "))
	fmt.Fprintf(&b, "If it is safe to ride, generate a friendly, natural summary explaining why, mentioning temperature, wind, rain, and visibility.\n")
	fmt.Fprintf(&b, "If it is not safe, briefly explain the main safety concerns from these reasons:\n%s\n\n",
		strings.Join(reasons, "; "))
	fmt.Fprintf(&b, "Keep the tone calm and factual. Do not break down each time slot individually.\n")
	fmt.Fprintf(&b, "At the end of your message, append either %s or %s on a new line.\n", g.safeTag, g.notSafeTag)

	return b.String()
}
