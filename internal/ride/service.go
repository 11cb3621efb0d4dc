package ride

import (
	"context"
	"errors"
	"log"
	"time"

	"motoweather/internal/assess"
	"motoweather/internal/forecast"
	"motoweather/internal/mail"
	"motoweather/internal/narrative"
)

// Sentinel errors for the two aborting failure modes. Both are reported to
// the caller after the error notification has already been sent; neither
// should trigger a second attempt.
var (
	ErrNoForecast = errors.New("no forecast data")
	ErrNoSlots    = errors.New("no matching forecast slots")
)

const errorSubject = "Ride Assistant Error"

// ForecastSource supplies raw forecast entries for the fixed coordinate.
type ForecastSource interface {
	Forecast(ctx context.Context) ([]forecast.Entry, error)
}

// Narrator produces the ride-safety narrative. Implementations must always
// return usable text, degrading to a fallback string on upstream failure.
type Narrator interface {
	Narrate(ctx context.Context, digest narrative.Digest, reasons []string) string
}

// Service runs the daily pipeline: fetch, match slots, summarize, assess,
// narrate, extract the decision, notify. Strictly sequential, no state
// between runs.
type Service struct {
	source     ForecastSource
	slots      []string
	thresholds assess.Thresholds
	narrator   Narrator
	mailer     mail.Sender
	safeTag    string
	notSafeTag string
	now        func() time.Time
}

// Options carries the Service dependencies and fixed run parameters.
type Options struct {
	Source     ForecastSource
	Slots      []string // commute time labels, in evaluation order
	Thresholds assess.Thresholds
	Narrator   Narrator
	Mailer     mail.Sender
	SafeTag    string
	NotSafeTag string
	Now        func() time.Time // defaults to time.Now
}

// NewService creates a pipeline Service.
func NewService(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		source:     opts.Source,
		slots:      opts.Slots,
		thresholds: opts.Thresholds,
		narrator:   opts.Narrator,
		mailer:     opts.Mailer,
		safeTag:    opts.SafeTag,
		notSafeTag: opts.NotSafeTag,
		now:        now,
	}
}

// Run executes one pass of the pipeline. Every failure path terminates in
// exactly one email notification and a normal return; the sentinel errors
// returned for aborted runs are informational for the caller's logs.
func (s *Service) Run(ctx context.Context) error {
	log.Println("INFO: requesting forecast")
	entries, err := s.source.Forecast(ctx)
	if err != nil {
		log.Printf("ERROR: forecast fetch failed: %v", err)
		s.notify(errorSubject, "Could not retrieve forecast.")
		return ErrNoForecast
	}

	matched, err := forecast.MatchSlots(entries, s.slots)
	if err != nil {
		log.Printf("ERROR: malformed forecast feed: %v", err)
		s.notify(errorSubject, "Could not retrieve forecast.")
		return ErrNoForecast
	}
	if len(matched) == 0 {
		log.Println("ERROR: no commute times present in forecast horizon")
		s.notify(errorSubject, "No matching forecast slots found.")
		return ErrNoSlots
	}

	summaries, err := forecast.SummarizeSlots(matched)
	if err != nil {
		log.Printf("ERROR: malformed forecast entry: %v", err)
		s.notify(errorSubject, "Could not retrieve forecast.")
		return ErrNoForecast
	}

	result := assess.Evaluate(s.slots, summaries, s.thresholds)
	log.Printf("INFO: safety assessment: safe=%t violations=%d", result.Safe, len(result.Reasons))

	digest := narrative.BuildDigest(summaries, s.now())
	text := s.narrator.Narrate(ctx, digest, result.Reasons)

	verdict := narrative.ExtractDecision(text, s.safeTag, s.notSafeTag)
	log.Printf("INFO: decision extracted: %s", verdict.Decision)

	s.notify(verdict.Subject, verdict.Body)
	return nil
}

// notify sends exactly one email; a transport failure is logged, never
// retried and never escalated.
func (s *Service) notify(subject, body string) {
	if err := s.mailer.Send(subject, body); err != nil {
		log.Printf("ERROR: email send failed: %v", err)
	}
}

// IsCommuteDay reports whether t falls on a weekday. The gate lives outside
// Run so schedulers and manual triggers share it.
func IsCommuteDay(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}
