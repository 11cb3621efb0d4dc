package forecast

import "testing"

func entryAt(dtTxt, description string, temp float64) Entry {
	var e Entry
	e.DtTxt = dtTxt
	e.Main.Temp = temp
	e.Weather = []struct {
		Description string `json:"description"`
	}{{Description: description}}
	return e
}

// TestMatchSlots verifies a label appears in the result iff some entry's
// time-of-day equals it.
func TestMatchSlots(t *testing.T) {
	entries := []Entry{
		entryAt("2025-03-10 03:00:00", "clear sky", 10),
		entryAt("2025-03-10 06:00:00", "light rain", 8),
		entryAt("2025-03-10 12:00:00", "overcast clouds", 12),
		entryAt("2025-03-10 21:00:00", "clear sky", 9),
	}

	matched, err := MatchSlots(entries, []string{"06:00", "09:00", "12:00", "15:00", "18:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matched) != 2 {
		t.Fatalf("expected 2 matched slots, got %d", len(matched))
	}
	if got := matched["06:00"].Weather[0].Description; got != "light rain" {
		t.Errorf("06:00: expected light rain, got %q", got)
	}
	if got := matched["12:00"].Weather[0].Description; got != "overcast clouds" {
		t.Errorf("12:00: expected overcast clouds, got %q", got)
	}
	if _, ok := matched["09:00"]; ok {
		t.Errorf("09:00 should be absent, no entry matches it")
	}
}

// TestMatchSlotsLastWins verifies that the last matching entry in input
// order overwrites earlier ones for the same label.
func TestMatchSlotsLastWins(t *testing.T) {
	entries := []Entry{
		entryAt("2025-03-10 06:00:00", "clear sky", 10),
		entryAt("2025-03-11 06:00:00", "snow", -1),
	}

	matched, err := MatchSlots(entries, []string{"06:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := matched["06:00"].Weather[0].Description; got != "snow" {
		t.Errorf("expected last entry to win, got %q", got)
	}
}

func TestMatchSlotsBadTimestamp(t *testing.T) {
	entries := []Entry{entryAt("not-a-timestamp", "clear sky", 10)}

	if _, err := MatchSlots(entries, []string{"06:00"}); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

func TestSummarizeDefaults(t *testing.T) {
	e := entryAt("2025-03-10 06:00:00", "clear sky", 15)
	e.Wind.Speed = 4

	s, err := Summarize(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.VisibilityM != DefaultVisibilityM {
		t.Errorf("expected default visibility %d, got %v", DefaultVisibilityM, s.VisibilityM)
	}
	if s.RainMM != DefaultRainMM {
		t.Errorf("expected default rain %d, got %v", DefaultRainMM, s.RainMM)
	}
	if s.Description != "clear sky" || s.TempC != 15 || s.WindMS != 4 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestSummarizeExplicitFields(t *testing.T) {
	e := entryAt("2025-03-10 06:00:00", "heavy intensity rain", 7)
	vis := 1200.0
	e.Visibility = &vis
	e.Rain = &struct {
		ThreeH float64 `json:"3h"`
	}{ThreeH: 3.4}

	s, err := Summarize(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.VisibilityM != 1200 {
		t.Errorf("expected visibility 1200, got %v", s.VisibilityM)
	}
	if s.RainMM != 3.4 {
		t.Errorf("expected rain 3.4, got %v", s.RainMM)
	}
}

// TestSummarizeMissingDescription verifies a missing required field is an
// error, never a default.
func TestSummarizeMissingDescription(t *testing.T) {
	var e Entry
	e.DtTxt = "2025-03-10 06:00:00"

	if _, err := Summarize(e); err == nil {
		t.Fatal("expected error for entry without weather description")
	}
}
