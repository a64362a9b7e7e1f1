package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match percentage patterns, tried in order; the first hit anywhere in the
// text wins. Generated text rarely follows the requested schema, so these
// accept the common phrasings ("Match: 85%", "85% match", "matches 85%",
// "profile match: 85").
var matchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)match\s*[:\-]?\s*(\d{1,3})%?`),
	regexp.MustCompile(`(?is)(\d{1,3})%\s*match`),
	regexp.MustCompile(`(?is)matches?\s*(\d{1,3})%`),
	regexp.MustCompile(`(?is)profile\s*match[:\-]?\s*(\d{1,3})%?`),
}

// Block captures run to the next section label or end of text.
var (
	strengthsBlock   = regexp.MustCompile(`(?is)strengths?\s*[:\-]?\s*(.*?)(?:weakness|suggestion|$)`)
	weaknessesBlock  = regexp.MustCompile(`(?is)weaknesses?\s*[:\-]?\s*(.*?)(?:suggestion|$)`)
	suggestionsBlock = regexp.MustCompile(`(?is)suggestions?\s*[:\-]?\s*(.*)`)

	itemSeparator = regexp.MustCompile(`[,;\n]`)
)

// Normalize extracts the structured result from raw generated text. It is a
// pure function and best-effort by design: an absent label yields an empty
// list and an absent percentage yields nil, never an error.
func Normalize(raw string) Result {
	return Result{
		MatchPercentage: extractMatchPercentage(raw),
		Strengths:       splitItems(extractBlock(strengthsBlock, raw), true),
		Weaknesses:      splitItems(extractBlock(weaknessesBlock, raw), true),
		Suggestions:     splitItems(extractBlock(suggestionsBlock, raw), false),
	}
}

func extractMatchPercentage(raw string) *string {
	for _, pattern := range matchPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			pct := m[1]
			return &pct
		}
	}
	return nil
}

func extractBlock(pattern *regexp.Regexp, raw string) string {
	if m := pattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// splitItems breaks a captured block into at most maxItems items, splitting on
// commas, semicolons, and newlines. Strengths and weaknesses get their first
// rune uppercased; suggestions keep their source casing.
func splitItems(block string, capitalized bool) []string {
	items := make([]string, 0, maxItems)
	if block == "" {
		return items
	}
	for _, part := range itemSeparator.Split(block, -1) {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if capitalized {
			item = capitalize(item)
		}
		items = append(items, item)
		if len(items) == maxItems {
			break
		}
	}
	return items
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
