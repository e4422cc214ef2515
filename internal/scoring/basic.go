package scoring

import (
	"math"
	"strings"
)

// ScoreResult is the outcome of basic scoring.
type ScoreResult struct {
	Score     int       `json:"score"`
	Feedback  []string  `json:"feedback"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown exposes the weighted sub-scores behind a ScoreResult.
type Breakdown struct {
	SectionScore            float64  `json:"sectionScore"`
	BaseKeywordScore        float64  `json:"baseKeywordScore"`
	JobSpecificScore        float64  `json:"jobSpecificScore"`
	FoundSections           []string `json:"foundSections"`
	MissingSections         []string `json:"missingSections"`
	MatchedKeywords         int      `json:"matchedKeywords"`
	TotalKeywords           int      `json:"totalKeywords"`
	JobKeywords             []string `json:"jobKeywords"`
	JobSpecificMatchPercent float64  `json:"jobSpecificMatchPercent"`
}

// Score computes the weighted ATS score of resumeText. jobTitle and
// jobDescription are optional; a missing description awards the full
// job-specific weight.
func (e *Engine) Score(resumeText, jobTitle, jobDescription string) (ScoreResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return ScoreResult{}, ErrEmptyInput
	}

	resumeLower := strings.ToLower(resumeText)
	titleLower := strings.ToLower(jobTitle)
	descLower := strings.ToLower(jobDescription)
	hasDescription := strings.TrimSpace(descLower) != ""

	jobKeywords := []string{}
	if hasDescription {
		jobKeywords = ExtractTopKeywords(descLower, e.cfg.BasicKeywordLimit, e.stopwords)
	}
	titleTokens := strings.Fields(titleLower)
	allKeywords := dedupe(e.keywords, jobKeywords, titleTokens)

	foundSections, missingSections := containedIn(resumeLower, e.sections)
	feedback := make([]string, 0, len(missingSections)+1)
	for _, section := range missingSections {
		feedback = append(feedback, addSectionLine(section))
	}

	matchedKeywords, _ := containedIn(resumeLower, allKeywords)

	jobSpecific := dedupe(jobKeywords, titleTokens)
	jobMatchPercent := 100.0
	if len(jobSpecific) > 0 {
		matched, _ := containedIn(resumeLower, jobSpecific)
		jobMatchPercent = float64(len(matched)) / float64(len(jobSpecific)) * 100
	}
	if hasDescription && jobMatchPercent < e.cfg.JobMatchWarnPercent {
		feedback = append(feedback, jobTermsWarningLine())
	}

	w := e.cfg.Weights
	sectionScore := ratio(len(foundSections), len(e.sections)) * w.Sections
	baseKeywordScore := ratio(len(matchedKeywords), len(allKeywords)) * w.BaseKeywords
	jobSpecificScore := w.JobSpecific
	if hasDescription {
		jobSpecificScore = jobMatchPercent / 100 * w.JobSpecific
	}

	return ScoreResult{
		Score:    int(math.Round(sectionScore + baseKeywordScore + jobSpecificScore)),
		Feedback: feedback,
		Breakdown: Breakdown{
			SectionScore:            sectionScore,
			BaseKeywordScore:        baseKeywordScore,
			JobSpecificScore:        jobSpecificScore,
			FoundSections:           foundSections,
			MissingSections:         missingSections,
			MatchedKeywords:         len(matchedKeywords),
			TotalKeywords:           len(allKeywords),
			JobKeywords:             jobKeywords,
			JobSpecificMatchPercent: jobMatchPercent,
		},
	}, nil
}

// ratio returns n/d, or 0 when d is 0.
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
