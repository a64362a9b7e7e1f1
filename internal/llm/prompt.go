package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analysis.txt
var analysisTemplate string

// promptInputLimit bounds how much of each input is embedded in the prompt.
const promptInputLimit = 1000

// BuildAnalysisPrompt renders the fixed analysis instruction template from the
// CV text and job description. Each input is silently capped at its first 1000
// characters. Deterministic, no side effects.
func BuildAnalysisPrompt(cvText, jobDescription string) string {
	replacer := strings.NewReplacer(
		"{{CV_TEXT}}", truncate(cvText, promptInputLimit),
		"{{JOB_DESCRIPTION}}", truncate(jobDescription, promptInputLimit),
	)
	return replacer.Replace(analysisTemplate)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
