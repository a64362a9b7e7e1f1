package analysis

// maxItems caps each content list regardless of how many candidates were extracted.
const maxItems = 3

// Result is the structured record returned for every analyze request. It is
// constructed fresh per request by either the normalizer or the fallback
// analyzer, serialized, and discarded.
type Result struct {
	MatchPercentage *string  `json:"match_percentage"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions"`
	IsFallback      bool     `json:"is_fallback"`
	FallbackReason  string   `json:"fallback_reason,omitempty"`
}
