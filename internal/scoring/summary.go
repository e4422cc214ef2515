package scoring

import "strings"

const summaryPreamble = "Based on my AI analysis:"

// Summarize condenses deep-analysis feedback into a short paragraph. It
// diffs the eligible description tokens against the resume tokens and notes
// section and skill gaps flagged in the feedback.
//
// Only a MarkerSuccess line selects the well-suited framing; a perfect-score
// MarkerCelebrate line keeps the improvement framing. Missing description
// tokens are deduplicated first, so a term repeated in the description counts
// once toward the "more than three" note.
func (e *Engine) Summarize(deepFeedback []string, resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(summaryPreamble)
	if anyContains(deepFeedback, MarkerSuccess) {
		b.WriteString(" Your resume is well-suited for this position, but here are some additional insights:")
	} else {
		b.WriteString(" Here are some key areas to improve your resume for this role:")
	}

	resumeTokens := make(map[string]bool)
	for _, tok := range keywordTokens(strings.ToLower(resumeText), e.stopwords) {
		resumeTokens[tok] = true
	}
	missing := make([]string, 0, 8)
	for _, tok := range keywordTokens(strings.ToLower(jobDescription), e.stopwords) {
		if !resumeTokens[tok] {
			missing = append(missing, tok)
		}
	}

	if len(missing) > 0 {
		b.WriteString(" - Missing keywords from job description: ")
		b.WriteString(strings.Join(firstN(missing, 3), ", "))
		b.WriteString(".")
		if len(missing) > 3 {
			b.WriteString(" Include more job-specific terms.")
		}
	} else {
		b.WriteString(" - Your resume contains all identified job-specific keywords. Excellent!")
	}

	if anyContains(deepFeedback, "sections") {
		b.WriteString(" - Consider adding or enhancing sections to match industry standards.")
	}
	if anyContains(deepFeedback, "skills") {
		b.WriteString(" - Ensure your skills section reflects the job's requirements.")
	}
	return b.String()
}

func anyContains(lines []string, needle string) bool {
	for _, line := range lines {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}
