package scoring

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DeepAnalysisResult is the outcome of the job-targeted analysis.
// SufficientContext is false when the title/description gate rejected the
// request; Feedback then holds a single explanatory line and Summary is empty.
type DeepAnalysisResult struct {
	Feedback          []string `json:"feedback"`
	Summary           string   `json:"summary"`
	SufficientContext bool     `json:"sufficientContext"`
}

// AnalyzeDeep runs the stricter analysis of resumeText against a target job.
// priorScore is the caller's latest basic score and only shapes the closing
// progress line; values outside 0..100 are clamped.
func (e *Engine) AnalyzeDeep(resumeText, jobTitle, jobDescription string, priorScore int) DeepAnalysisResult {
	if strings.TrimSpace(jobTitle) == "" || strings.TrimSpace(jobDescription) == "" {
		return DeepAnalysisResult{Feedback: []string{missingContextLine()}}
	}
	if n := utf8.RuneCountInString(jobDescription); n < e.cfg.MinDescriptionLength {
		return DeepAnalysisResult{Feedback: []string{shortDescriptionLine(e.cfg.MinDescriptionLength, n)}}
	}

	resumeLower := strings.ToLower(resumeText)
	titleLower := strings.ToLower(jobTitle)
	descLower := strings.ToLower(jobDescription)
	feedback := make([]string, 0, 8)

	if repeated := e.repeatedTokens(descLower); len(repeated) > e.cfg.RepeatDistinctMin {
		feedback = append(feedback, repetitionLine(firstN(repeated, 3)))
	}

	_, missingSections := containedIn(resumeLower, e.sections)
	if len(missingSections) > 0 {
		feedback = append(feedback, missingSectionsLine(missingSections))
	}

	// An empty title word list counts as fully aligned.
	titleWords := strings.Fields(titleLower)
	if len(titleWords) > 0 {
		matched, missing := containedIn(resumeLower, titleWords)
		percent := float64(len(matched)) / float64(len(titleWords)) * 100
		if percent < 100 {
			feedback = append(feedback, titleAlignmentLine(int(math.Round(percent)), missing))
		}
	}

	topKeywords := ExtractTopKeywords(descLower, e.cfg.DeepKeywordLimit, e.stopwords)
	_, missingKeywords := containedIn(resumeLower, topKeywords)
	if len(missingKeywords) > 0 {
		feedback = append(feedback, missingKeywordsLine(missingKeywords))
	}

	missingSkills := make([]string, 0, len(e.skills))
	for _, skill := range e.skills {
		mentioned := strings.Contains(descLower, skill) || strings.Contains(titleLower, skill)
		if mentioned && !strings.Contains(resumeLower, skill) {
			missingSkills = append(missingSkills, skill)
		}
	}
	if len(missingSkills) > 0 {
		feedback = append(feedback, missingSkillsLine(missingSkills))
	}

	if strings.Contains(descLower, "experience") &&
		!strings.Contains(resumeLower, "year") &&
		!strings.Contains(resumeLower, "experience") {
		feedback = append(feedback, experienceLine())
	}

	if strings.Contains(titleLower, "developer") &&
		!strings.Contains(resumeLower, "develop") &&
		!strings.Contains(resumeLower, "coding") {
		feedback = append(feedback, developerLine())
	}

	score := clampScore(priorScore)
	if score < 100 {
		points := make([]string, 0, 3)
		if len(missingSections) > 0 {
			points = append(points, "add sections: "+strings.Join(missingSections, ", "))
		}
		if len(missingKeywords) > 0 {
			points = append(points, "include keywords: "+strings.Join(missingKeywords, ", "))
		}
		if len(missingSkills) > 0 {
			points = append(points, "add skills: "+strings.Join(missingSkills, ", "))
		}
		feedback = append(feedback, progressLine(score, points))
	} else {
		feedback = append(feedback, perfectScoreLine())
	}

	return DeepAnalysisResult{
		Feedback:          feedback,
		Summary:           e.Summarize(feedback, resumeText, jobDescription),
		SufficientContext: true,
	}
}

// repeatedTokens lists raw description tokens occurring more than
// RepeatThreshold times, in first-seen order.
func (e *Engine) repeatedTokens(descLower string) []string {
	order, counts := tokenCounts(descLower)
	out := make([]string, 0, 4)
	for _, tok := range order {
		if counts[tok] > e.cfg.RepeatThreshold {
			out = append(out, tok)
		}
	}
	return out
}

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
