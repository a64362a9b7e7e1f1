package analysis

import (
	"strconv"
	"strings"
)

// Keyword sets for the heuristic analyzer.
var (
	techSkills = []string{"python", "javascript", "java", "react", "node.js", "aws", "docker", "kubernetes", "sql", "mongodb"}
	softSkills = []string{"leadership", "communication", "teamwork", "problem solving", "project management"}
)

const (
	fallbackMinPercentage = 40
	fallbackMaxPercentage = 95
	fallbackOffset        = 30
)

// FallbackAnalysis produces a deterministic heuristic result from the CV and
// job description alone. No external calls; same inputs always yield the same
// output. The caller attaches the fallback reason.
func FallbackAnalysis(cvText, jobDescription string) Result {
	cvLower := strings.ToLower(cvText)
	jobLower := strings.ToLower(jobDescription)

	// Only skills present in BOTH texts count toward the match signal.
	techMatches := countShared(techSkills, cvLower, jobLower)
	softMatches := countShared(softSkills, cvLower, jobLower)

	total := len(techSkills) + len(softSkills)
	pct := (techMatches+softMatches)*100/total + fallbackOffset
	if pct < fallbackMinPercentage {
		pct = fallbackMinPercentage
	}
	if pct > fallbackMaxPercentage {
		pct = fallbackMaxPercentage
	}

	var strengths, weaknesses, suggestions []string

	if strings.Contains(cvLower, "experience") {
		strengths = append(strengths, "Has relevant work experience")
	} else {
		weaknesses = append(weaknesses, "Limited work experience")
		suggestions = append(suggestions, "Add relevant work experience or internships")
	}

	if containsAny(cvLower, techSkills) {
		strengths = append(strengths, "Technical skills present")
	} else {
		weaknesses = append(weaknesses, "Missing technical skills")
		suggestions = append(suggestions, "Add relevant technical skills")
	}

	if strings.Contains(cvLower, "education") || strings.Contains(cvLower, "degree") {
		strengths = append(strengths, "Educational background present")
	} else {
		weaknesses = append(weaknesses, "Education information missing")
		suggestions = append(suggestions, "Include educational background")
	}

	if strings.Contains(cvLower, "project") {
		strengths = append(strengths, "Project experience mentioned")
	} else {
		suggestions = append(suggestions, "Add specific project examples")
	}

	if len(strengths) == 0 {
		strengths = []string{"Good foundation for the role"}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"Could use more specific examples"}
	}
	if len(suggestions) == 0 {
		suggestions = []string{"Add quantifiable achievements", "Include relevant certifications"}
	}

	pctStr := strconv.Itoa(pct)
	return Result{
		MatchPercentage: &pctStr,
		Strengths:       capItems(strengths),
		Weaknesses:      capItems(weaknesses),
		Suggestions:     capItems(suggestions),
		IsFallback:      true,
	}
}

func countShared(keywords []string, cvLower, jobLower string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(cvLower, kw) && strings.Contains(jobLower, kw) {
			count++
		}
	}
	return count
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func capItems(items []string) []string {
	if len(items) > maxItems {
		return items[:maxItems]
	}
	return items
}
