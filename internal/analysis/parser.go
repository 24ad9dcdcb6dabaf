package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedJSON matches a markdown code fence explicitly tagged as json
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")

const emptyOutputSummary = "model returned no output"

// Parse extracts a Result from raw model output. It tries, in order:
// a fenced block tagged as json, the whole text as a JSON object, and
// finally a summary-only fallback carrying the raw text. It never fails.
func Parse(raw string) Result {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		if r, ok := decode(m[1]); ok {
			return r
		}
	}

	if r, ok := decode(raw); ok {
		return r
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		summary = emptyOutputSummary
	}
	return Result{OverallSummary: summary}
}

// decode parses text as the structured result object. An object that
// decodes but carries none of the expected keys is treated as a miss so
// the caller falls through to the next rung.
func decode(text string) (Result, bool) {
	var r Result
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &r); err != nil {
		return Result{}, false
	}

	if r.OverallSummary == "" && !r.IsStructured() {
		return Result{}, false
	}

	if r.OverallSummary == "" {
		r.OverallSummary = emptyOutputSummary
	}

	return r, true
}
