package narrative

import "strings"

// Decision is the machine-actionable outcome recovered from generated text.
type Decision string

const (
	DecisionSafe    Decision = "safe"
	DecisionNotSafe Decision = "not_safe"
	DecisionUnclear Decision = "unclear"
)

const (
	subjectSafe    = "Ride Today: Yes"
	subjectNotSafe = "Ride Today: No"
	subjectUnclear = "Ride Today: Unclear"

	unclearNote = "(Note: Ride safety could not be determined automatically.)"
)

// Verdict carries the extracted decision plus the subject and body to send.
type Verdict struct {
	Decision Decision
	Subject  string
	Body     string
}

// ExtractDecision parses generated narrative text for a terminal decision tag.
// The last non-empty line is compared byte-for-byte against the two tags: no
// case folding, no trimming of that line. This strictness is deliberate — the
// tag contract with the text generator is exact-match, and anything else
// (wrong case, stray whitespace, missing line) falls back to an unclear
// verdict with the full original text kept and a caveat appended. Swapping in
// a structured-output protocol later only needs to replace this function.
func ExtractDecision(text, safeTag, notSafeTag string) Verdict {
	lines := strings.Split(text, "\n")

	last := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = i
			break
		}
	}

	if last >= 0 {
		switch lines[last] {
		case safeTag:
			return Verdict{
				Decision: DecisionSafe,
				Subject:  subjectSafe,
				Body:     strings.TrimSpace(strings.Join(lines[:last], "\n")),
			}
		case notSafeTag:
			return Verdict{
				Decision: DecisionNotSafe,
				Subject:  subjectNotSafe,
				Body:     strings.TrimSpace(strings.Join(lines[:last], "\n")),
			}
		}
	}

	return Verdict{
		Decision: DecisionUnclear,
		Subject:  subjectUnclear,
		Body:     text + "\n\n" + unclearNote,
	}
}
