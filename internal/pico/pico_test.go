package pico

import (
	"strings"
	"testing"

	"nephscope/internal/core"
	"nephscope/internal/locale"
)

func TestExtractAllFields(t *testing.T) {
	e := NewExtractor(locale.TraditionalChinese())
	article := core.Article{
		Title: "Dapagliflozin in chronic kidney disease",
		Abstract: "Patients with chronic kidney disease were enrolled at twelve centers. " +
			"They received dapagliflozin versus placebo. " +
			"The primary outcome was decline in eGFR over 24 months.",
	}

	p := e.Extract(article)

	if p.Population != "chronic kidney disease" {
		t.Errorf("unexpected population: %q", p.Population)
	}
	if p.Intervention != "dapagliflozin" {
		t.Errorf("unexpected intervention: %q", p.Intervention)
	}
	if p.Comparison != "placebo" {
		t.Errorf("unexpected comparison: %q", p.Comparison)
	}
	if !strings.Contains(p.Outcome, "decline in eGFR") {
		t.Errorf("unexpected outcome: %q", p.Outcome)
	}
}

func TestExtractUnmatchedFieldsStayEmpty(t *testing.T) {
	e := NewExtractor(locale.TraditionalChinese())
	p := e.Extract(core.Article{Title: "", Abstract: ""})

	if p.Population != "" || p.Intervention != "" || p.Comparison != "" || p.Outcome != "" {
		t.Errorf("expected all empty fields, got %+v", p)
	}
}

func TestExtractFieldTruncation(t *testing.T) {
	e := NewExtractor(locale.TraditionalChinese())
	article := core.Article{
		Abstract: "Patients with " + strings.Repeat("x", 300) + " were treated",
	}

	p := e.Extract(article)

	if len([]rune(p.Population)) != FieldMaxLen {
		t.Errorf("expected population truncated to %d runes, got %d", FieldMaxLen, len([]rune(p.Population)))
	}
}

func TestExtractMeshFallbackPopulation(t *testing.T) {
	e := NewExtractor(locale.TraditionalChinese())
	article := core.Article{
		Title:     "Novel serum markers",
		Abstract:  "An exploratory biomarker panel analysis.",
		MeshTerms: []string{"Humans", "Renal Insufficiency, Chronic", "Nephrotic Syndrome", "Kidney Failure, Chronic"},
	}

	p := e.Extract(article)

	// Only the first two disease-indicating terms are used.
	want := "患有 Renal Insufficiency, Chronic, Nephrotic Syndrome 的病人"
	if p.Population != want {
		t.Errorf("expected fallback population %q, got %q", want, p.Population)
	}
}

func TestExtractMeshFallbackSkippedWhenPatternMatched(t *testing.T) {
	e := NewExtractor(locale.TraditionalChinese())
	article := core.Article{
		Abstract:  "Children with nephrotic syndrome were followed for one year.",
		MeshTerms: []string{"Kidney Diseases"},
	}

	p := e.Extract(article)

	if p.Population != "nephrotic syndrome" {
		t.Errorf("expected matched population, got %q", p.Population)
	}
}

func TestFirstMatchOrderWins(t *testing.T) {
	// Both the "effect of" pattern and the "received" pattern could apply;
	// the earlier pattern in the list must win.
	text := "Subjects received empagliflozin. We measured the effect of exercise on blood pressure."
	got := firstMatch(interventionPatterns, text)

	if got != "empagliflozin" {
		t.Errorf("expected first pattern to win with %q, got %q", "empagliflozin", got)
	}
}

func TestComparisonWholeMatchPattern(t *testing.T) {
	// The bare comparator pattern has no capture group and yields the whole
	// match.
	got := firstMatch(comparisonPatterns, "All participants continued standard care during follow-up")

	if got != "standard care" {
		t.Errorf("expected %q, got %q", "standard care", got)
	}
}
