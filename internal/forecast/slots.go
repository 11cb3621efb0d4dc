package forecast

import (
	"fmt"
	"time"
)

// timestampLayout matches the fixed dt_txt format of the forecast feed.
const timestampLayout = "2006-01-02 15:04:05"

// MatchSlots selects the entries whose time-of-day equals one of the target
// labels ("HH:MM"). Later entries overwrite earlier ones for the same label,
// so the last match in input order wins. A label with no matching entry is
// simply absent from the result; the caller decides what an empty map means.
func MatchSlots(entries []Entry, targets []string) (map[string]Entry, error) {
	wanted := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		wanted[t] = struct{}{}
	}

	matched := make(map[string]Entry)
	for _, e := range entries {
		ts, err := time.Parse(timestampLayout, e.DtTxt)
		if err != nil {
			return nil, fmt.Errorf("invalid forecast timestamp %q: %w", e.DtTxt, err)
		}
		label := ts.Format("15:04")
		if _, ok := wanted[label]; ok {
			matched[label] = e
		}
	}
	return matched, nil
}
