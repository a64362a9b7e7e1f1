package analysis

import (
	"context"
	"strings"
	"time"

	"cv-analyzer-backend/internal/llm"
	"cv-analyzer-backend/internal/shared/metrics"
	"cv-analyzer-backend/internal/shared/telemetry"
)

// unstructuredReason is the fixed fallback reason when generation succeeded
// but the text carries none of the expected analysis vocabulary.
const unstructuredReason = "LLM response was not structured properly"

// usabilityKeywords gate structured extraction: raw text lacking all of them
// is judged unusable and routed to the fallback analyzer.
var usabilityKeywords = []string{"match", "strength", "weakness"}

// Service runs the analysis pipeline: build the prompt, attempt one
// generation call, then normalize the response or fall back to the local
// heuristic analyzer. Stateless; safe for concurrent use.
type Service struct {
	LLM llm.Client
}

// Analyze never fails: any problem downstream of its inputs is absorbed into
// a fallback result tagged with the reason.
func (s *Service) Analyze(ctx context.Context, cvText, jobDescription string) Result {
	start := time.Now()
	defer func() {
		metrics.ObserveAnalyzeDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	}()
	metrics.IncAnalyzeRequests()

	prompt := llm.BuildAnalysisPrompt(cvText, jobDescription)

	raw, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return s.fallback(cvText, jobDescription, "Connection error: "+errorMessage(err))
	}
	if !usableResponse(raw) {
		return s.fallback(cvText, jobDescription, unstructuredReason)
	}
	return Normalize(raw)
}

func (s *Service) fallback(cvText, jobDescription, reason string) Result {
	metrics.IncAnalyzeFallbacks()
	telemetry.Warn("analysis.fallback", map[string]any{"reason": reason})

	result := FallbackAnalysis(cvText, jobDescription)
	result.FallbackReason = reason
	return result
}

// usableResponse reports whether the raw text contains any of the analysis
// keywords worth extracting. Empty text is never usable. Passing the gate
// does not guarantee any field actually extracts; the normalizer degrades to
// empty fields on its own.
func usableResponse(raw string) bool {
	if raw == "" {
		return false
	}
	lowered := strings.ToLower(raw)
	for _, kw := range usabilityKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func errorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return msg
}
