package analysis

import "encoding/json"

// Result is the structured outcome of one resume analysis. When the model
// output could not be parsed into the full shape, only OverallSummary is
// populated with the raw text (a fallback result).
type Result struct {
	JobDescription string   `json:"job_description,omitempty"`
	Strength       []string `json:"strength,omitempty"`
	Weakness       []string `json:"weakness,omitempty"`
	ChangesNeeded  []string `json:"changes_needed,omitempty"`
	OverallSummary string   `json:"overall_summary"`
}

// IsStructured reports whether the result carries more than the
// summary-only fallback shape
func (r Result) IsStructured() bool {
	return r.JobDescription != "" ||
		len(r.Strength) > 0 ||
		len(r.Weakness) > 0 ||
		len(r.ChangesNeeded) > 0
}

// MarshalJSONB serializes the result for the jobs.result column
func (r Result) MarshalJSONB() ([]byte, error) {
	return json.Marshal(r)
}
