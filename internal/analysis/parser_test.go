package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredJSON = `{
	"job_description": "Backend Engineer building Go services",
	"strength": ["solid Go experience", "clear project outcomes"],
	"weakness": ["no mention of databases"],
	"changes_needed": ["quantify impact", "add database experience"],
	"overall_summary": "Strong fit, roughly 75% match for the role."
}`

func TestParse_FencedBlock(t *testing.T) {
	raw := "Here is my analysis of the resume:\n\n```json\n" + structuredJSON + "\n```\n\nLet me know if you need more."

	result := Parse(raw)

	assert.Equal(t, "Backend Engineer building Go services", result.JobDescription)
	assert.Equal(t, []string{"solid Go experience", "clear project outcomes"}, result.Strength)
	assert.Equal(t, []string{"no mention of databases"}, result.Weakness)
	assert.Equal(t, []string{"quantify impact", "add database experience"}, result.ChangesNeeded)
	assert.Equal(t, "Strong fit, roughly 75% match for the role.", result.OverallSummary)
	assert.True(t, result.IsStructured())
}

func TestParse_BareJSON(t *testing.T) {
	result := Parse(structuredJSON)

	assert.Equal(t, "Backend Engineer building Go services", result.JobDescription)
	assert.Len(t, result.ChangesNeeded, 2)
	assert.True(t, result.IsStructured())
}

func TestParse_FallbackToRawText(t *testing.T) {
	raw := "This resume reads well but lacks measurable impact statements."

	result := Parse(raw)

	assert.False(t, result.IsStructured())
	assert.Equal(t, raw, result.OverallSummary)
}

func TestParse_MalformedFenceFallsThrough(t *testing.T) {
	// broken JSON inside the fence must not lose the model output
	raw := "```json\n{\"overall_summary\": \"unterminated\n```"

	result := Parse(raw)

	assert.False(t, result.IsStructured())
	assert.Contains(t, result.OverallSummary, "overall_summary")
}

func TestParse_NeverReturnsEmptySummary(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"{}",
		`{"unrelated": true}`,
		`{"strength": ["terse"]}`,
		"plain text",
		"```json\n" + structuredJSON + "\n```",
	}

	for _, raw := range inputs {
		result := Parse(raw)
		require.NotEmpty(t, result.OverallSummary, "input %q", raw)
	}
}

func TestParse_StructuredWithoutSummaryGetsPlaceholder(t *testing.T) {
	result := Parse(`{"strength": ["concise"], "weakness": ["vague"]}`)

	assert.True(t, result.IsStructured())
	assert.Equal(t, emptyOutputSummary, result.OverallSummary)
}

func TestResult_MarshalJSONB(t *testing.T) {
	t.Run("fallback shape is summary-only", func(t *testing.T) {
		b, err := Result{OverallSummary: "just text"}.MarshalJSONB()
		require.NoError(t, err)
		assert.JSONEq(t, `{"overall_summary":"just text"}`, string(b))
	})

	t.Run("structured shape keeps all five keys", func(t *testing.T) {
		result := Parse(structuredJSON)
		b, err := result.MarshalJSONB()
		require.NoError(t, err)

		for _, key := range []string{"job_description", "strength", "weakness", "changes_needed", "overall_summary"} {
			assert.Contains(t, string(b), key)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("with role requests the five-key object", func(t *testing.T) {
		prompt := BuildPrompt("Backend Engineer")

		assert.Contains(t, prompt, "Backend Engineer")
		for _, key := range []string{"job_description", "strength", "weakness", "changes_needed", "overall_summary"} {
			assert.Contains(t, prompt, key)
		}
		assert.Contains(t, prompt, "0-100%")
	})

	t.Run("without role requests free-form critique", func(t *testing.T) {
		prompt := BuildPrompt("")

		assert.NotContains(t, prompt, "JSON")
		assert.Contains(t, prompt, "Critique")
	})

	t.Run("whitespace role treated as absent", func(t *testing.T) {
		assert.Equal(t, BuildPrompt(""), BuildPrompt("   "))
	})
}
