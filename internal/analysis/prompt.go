package analysis

import "strings"

// BuildPrompt composes the instruction sent ahead of the rasterized pages.
// When a target role is supplied the model is asked for only a JSON object
// with the keys Parse understands; without a role it is asked for free-form
// critical commentary.
func BuildPrompt(jobRole string) string {
	role := strings.TrimSpace(jobRole)
	if role == "" {
		return "You are a blunt, experienced recruiter. The following images are the pages " +
			"of a candidate's resume. Critique it honestly: call out weak phrasing, filler, " +
			"formatting problems, and anything that would get it rejected. Be specific and direct."
	}

	parts := []string{
		"You are an experienced technical recruiter reviewing a resume for the role of " + role + ".",
		"The following images are the pages of the candidate's resume, in order.",
		"Return ONLY a JSON object with exactly these keys:",
		`"job_description" (string: a short description of the target role),`,
		`"strength" (array of strings: what works in this resume for the role),`,
		`"weakness" (array of strings: what hurts this resume for the role),`,
		`"changes_needed" (array of strings: concrete edits the candidate should make),`,
		`"overall_summary" (string: an overall assessment that includes an estimated 0-100% match for the role).`,
		"Do not wrap the JSON in prose. Never output null; omit values you cannot determine.",
	}
	return strings.Join(parts, " ")
}
