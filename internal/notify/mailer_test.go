package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cuongbtq/resume-analyzer-be/internal/analysis"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "Your resume analysis for Backend Engineer", subject("Backend Engineer"))
	assert.Equal(t, "Your resume analysis", subject(""))
	assert.Equal(t, "Your resume analysis", subject("   "))
}

func TestRenderBody_Structured(t *testing.T) {
	result := analysis.Result{
		JobDescription: "Builds Go services",
		Strength:       []string{"clear writing", "good projects"},
		Weakness:       []string{"no metrics"},
		ChangesNeeded:  []string{"add numbers"},
		OverallSummary: "About 70% match.",
	}

	body := renderBody(result, "Backend Engineer")

	assert.Contains(t, body, "Target role: Backend Engineer")
	assert.Contains(t, body, "Builds Go services")
	assert.Contains(t, body, "Strengths:")
	assert.Contains(t, body, "  - clear writing")
	assert.Contains(t, body, "Weaknesses:")
	assert.Contains(t, body, "Suggested changes:")
	assert.Contains(t, body, "About 70% match.")
}

func TestRenderBody_FallbackOmitsEmptySections(t *testing.T) {
	result := analysis.Result{OverallSummary: "raw model commentary"}

	body := renderBody(result, "")

	assert.NotContains(t, body, "Target role")
	assert.NotContains(t, body, "Strengths:")
	assert.NotContains(t, body, "Weaknesses:")
	assert.NotContains(t, body, "Suggested changes:")
	assert.Contains(t, body, "raw model commentary")
}
