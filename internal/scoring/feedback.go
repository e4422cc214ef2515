package scoring

import (
	"fmt"
	"strings"
)

// Markers prefix feedback lines so clients can style them.
const (
	MarkerAdd       = "➕"
	MarkerWarning   = "⚠️"
	MarkerProgress  = "📈"
	MarkerSuccess   = "✅"
	MarkerCelebrate = "🎉"
)

func addSectionLine(section string) string {
	return fmt.Sprintf("%s Add the \"%s\" section to improve your resume's structure.", MarkerAdd, section)
}

func jobTermsWarningLine() string {
	return MarkerWarning + " Your resume lacks key terms from the job title and description. Add more job-specific keywords."
}

func missingContextLine() string {
	return MarkerWarning + " Please provide both a job title and job description."
}

func shortDescriptionLine(required, current int) string {
	return fmt.Sprintf("%s Job description must be at least %d characters (currently %d characters). Please provide a detailed description for accurate analysis.", MarkerWarning, required, current)
}

func repetitionLine(examples []string) string {
	return fmt.Sprintf("%s Job description has excessive repetition (e.g., %s). Use varied language for better analysis.", MarkerWarning, strings.Join(examples, ", "))
}

func missingSectionsLine(sections []string) string {
	return fmt.Sprintf("%s Missing sections: %s. Add these to improve your score.", MarkerAdd, strings.Join(sections, ", "))
}

func titleAlignmentLine(percent int, missing []string) string {
	return fmt.Sprintf("%s Job title alignment is %d%%. Add missing title terms: %s.", MarkerWarning, percent, strings.Join(missing, ", "))
}

func missingKeywordsLine(keywords []string) string {
	return fmt.Sprintf("%s Missing job-specific keywords: %s. Incorporate these to boost your score.", MarkerAdd, strings.Join(keywords, ", "))
}

func missingSkillsLine(skills []string) string {
	return fmt.Sprintf("%s Missing skills: %s. Add these to enhance your resume.", MarkerAdd, strings.Join(skills, ", "))
}

func experienceLine() string {
	return MarkerWarning + ` The job requires experience. Add terms like "years" or "experience" (e.g., "3 years of software development").`
}

func developerLine() string {
	return MarkerWarning + ` For a "Software Developer" role, include "development" or "coding" to enhance alignment.`
}

func progressLine(score int, points []string) string {
	return fmt.Sprintf("%s Your current score is %d/100. To reach 100, improve these: %s.", MarkerProgress, score, strings.Join(points, "; "))
}

func perfectScoreLine() string {
	return MarkerCelebrate + " Perfect score! Your resume fully aligns with the job title and description."
}
