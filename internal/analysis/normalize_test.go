package analysis

import (
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

const structuredResponse = "Match: 85%. Strengths: Technical background, relevant experience, good communication skills. " +
	"Weaknesses: Could use more specific examples, limited project management experience. " +
	"Suggestions: Add project examples, include certifications, highlight leadership roles."

func TestNormalizeStructuredResponse(t *testing.T) {
	result := Normalize(structuredResponse)

	if result.MatchPercentage == nil || *result.MatchPercentage != "85" {
		t.Fatalf("expected match percentage 85, got %v", result.MatchPercentage)
	}
	if !containsItem(result.Strengths, "Technical background") {
		t.Fatalf("expected strengths to include %q, got %v", "Technical background", result.Strengths)
	}
	if !containsItem(result.Weaknesses, "Could use more specific examples") {
		t.Fatalf("expected weaknesses to include %q, got %v", "Could use more specific examples", result.Weaknesses)
	}
	if !containsItem(result.Suggestions, "Add project examples") {
		t.Fatalf("expected suggestions to include %q, got %v", "Add project examples", result.Suggestions)
	}
	if result.IsFallback {
		t.Fatal("normalized result must not be tagged as fallback")
	}
}

func TestNormalizeUnstructuredText(t *testing.T) {
	result := Normalize("The candidate is a good fit.")

	if result.MatchPercentage != nil {
		t.Fatalf("expected nil match percentage, got %q", *result.MatchPercentage)
	}
	if len(result.Strengths) != 0 || len(result.Weaknesses) != 0 || len(result.Suggestions) != 0 {
		t.Fatalf("expected empty lists, got strengths=%v weaknesses=%v suggestions=%v",
			result.Strengths, result.Weaknesses, result.Suggestions)
	}
}

func TestNormalizeStrengthsOnly(t *testing.T) {
	result := Normalize("strengths: solid fundamentals")

	if !containsItem(result.Strengths, "Solid fundamentals") {
		t.Fatalf("expected capitalized strength, got %v", result.Strengths)
	}
	if len(result.Weaknesses) != 0 {
		t.Fatalf("expected empty weaknesses, got %v", result.Weaknesses)
	}
	if len(result.Suggestions) != 0 {
		t.Fatalf("expected empty suggestions, got %v", result.Suggestions)
	}
}

func TestNormalizeListsCappedAtThree(t *testing.T) {
	raw := "Match 70%. Strengths: a, b, c, d, e. Weaknesses: f; g; h; i. Suggestions: j\nk\nl\nm"
	result := Normalize(raw)

	if len(result.Strengths) != 3 {
		t.Fatalf("expected 3 strengths, got %d: %v", len(result.Strengths), result.Strengths)
	}
	if len(result.Weaknesses) != 3 {
		t.Fatalf("expected 3 weaknesses, got %d: %v", len(result.Weaknesses), result.Weaknesses)
	}
	if len(result.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d: %v", len(result.Suggestions), result.Suggestions)
	}
	if result.Strengths[0] != "A" || result.Strengths[2] != "C" {
		t.Fatalf("expected order of appearance preserved, got %v", result.Strengths)
	}
}

func TestNormalizeMatchPatternOrder(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"label with colon", "Match: 85%", "85"},
		{"label with dash", "match - 42", "42"},
		{"percent before keyword", "The profile is a 90% match for this role", "90"},
		{"matches verb", "The candidate matches 60% of requirements", "60"},
		{"profile match label", "Profile match: 77", "77"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Normalize(tc.raw)
			if result.MatchPercentage == nil {
				t.Fatalf("expected match percentage %q, got nil", tc.want)
			}
			if *result.MatchPercentage != tc.want {
				t.Fatalf("expected match percentage %q, got %q", tc.want, *result.MatchPercentage)
			}
		})
	}
}

func TestNormalizeCasingLaw(t *testing.T) {
	raw := "strengths: good attitude, strong ethic. weaknesses: short tenure. suggestions: add more detail, KEEP the formatting"
	result := Normalize(raw)

	for _, item := range append(append([]string{}, result.Strengths...), result.Weaknesses...) {
		r, _ := utf8.DecodeRuneInString(item)
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			t.Fatalf("expected uppercase first letter, got %q", item)
		}
	}
	if !containsItem(result.Suggestions, "add more detail") {
		t.Fatalf("expected suggestion casing preserved, got %v", result.Suggestions)
	}
	if !containsItem(result.Suggestions, "KEEP the formatting") {
		t.Fatalf("expected suggestion casing preserved, got %v", result.Suggestions)
	}
}

func TestNormalizeCapitalizeFirstRuneOnly(t *testing.T) {
	result := Normalize("strengths: works with AWS and SQL daily")
	if !containsItem(result.Strengths, "Works with AWS and SQL daily") {
		t.Fatalf("expected tail casing untouched, got %v", result.Strengths)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(structuredResponse)
	second := Normalize(structuredResponse)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestNormalizeDigitsOnly(t *testing.T) {
	texts := []string{structuredResponse, "85% match", "match: 100%", "match abc"}
	for _, raw := range texts {
		result := Normalize(raw)
		if result.MatchPercentage == nil {
			continue
		}
		pct := *result.MatchPercentage
		if len(pct) < 1 || len(pct) > 3 {
			t.Fatalf("expected 1-3 digits, got %q", pct)
		}
		for _, r := range pct {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", pct)
			}
		}
	}
}

func TestNormalizeDropsEmptyItems(t *testing.T) {
	result := Normalize("strengths: a,, ,b")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(result.Strengths, want) {
		t.Fatalf("expected %v, got %v", want, result.Strengths)
	}
}

func containsItem(items []string, want string) bool {
	for _, item := range items {
		if strings.TrimRight(item, ".") == strings.TrimRight(want, ".") {
			return true
		}
	}
	return false
}
