// Package pico extracts a structured clinical-question decomposition
// (Population, Intervention, Comparison, Outcome) from free article text.
// Extraction is deterministic pattern matching: per field, an ordered list
// of patterns is evaluated and the first match wins.
package pico

import (
	"fmt"
	"regexp"
	"strings"

	"nephscope/internal/core"
	"nephscope/internal/locale"
)

// FieldMaxLen is the hard truncation bound for every extracted field.
const FieldMaxLen = 200

// PICO holds the four extracted fields. A field with no match stays an
// empty string, never null, so downstream rendering is uniform.
type PICO struct {
	Population   string `json:"population"`
	Intervention string `json:"intervention"`
	Comparison   string `json:"comparison"`
	Outcome      string `json:"outcome"`
}

var populationPatterns = compileAll(
	`(?i)(?:patients?|subjects?|participants?|children|adults?|individuals?)\s+(?:with|who|having)\s+([^.]+?)(?:\.|,|were|was)`,
	`(?i)(?:in|among)\s+(\d+[\d,]*\s*(?:patients?|subjects?|participants?|children|adults?)(?:[^.]{0,100}))`,
	`(?i)(\d+[\d,]*\s*(?:patients?|subjects?|participants?|children|adults?)[^.]{0,50}(?:with|having)[^.]{0,100})`,
	`(?i)(?:enrolled|included|recruited)\s+(\d+[^.]{0,150})`,
)

var interventionPatterns = compileAll(
	`(?i)(?:received|treated with|administered|given|assigned to)\s+([^.]+?)(?:\.|,|versus|vs|compared|or placebo)`,
	`(?i)(?:intervention|treatment)\s+(?:group|arm)?\s*(?:received|was|included)?\s*([^.]+?)(?:\.|,|versus|vs)`,
	`(?i)(?:effect of|efficacy of|impact of)\s+([^.]+?)\s+(?:on|in|for)`,
)

var comparisonPatterns = compileAll(
	`(?i)(?:compared (?:to|with)|versus|vs\.?)\s+([^.]+?)(?:\.|,|in terms)`,
	`(?i)(?:control group|placebo group)\s*(?:received|was)?\s*([^.]*)`,
	`(?i)(?:placebo|standard care|usual care|conventional treatment)`,
)

var outcomePatterns = compileAll(
	`(?i)(?:primary (?:outcome|endpoint)|main outcome)\s*(?:was|were|included)?\s*([^.]+)`,
	`(?i)(?:measured|assessed|evaluated)\s+([^.]+?)(?:\.|,|using|by)`,
	`(?i)(?:significantly|showed)\s+([^.]+?)(?:\.|,)`,
	`(?i)(?:reduction|increase|improvement|decrease|change)\s+(?:in|of)\s+([^.]+?)(?:\.|,)`,
)

// diseaseIndicators mark a MeSH term as naming a patient population.
var diseaseIndicators = []string{
	"disease", "syndrome", "disorder", "injury",
	"failure", "nephro", "kidney", "renal",
}

// Extractor applies the pattern families to article text.
type Extractor struct {
	loc *locale.Bundle
}

// NewExtractor creates an extractor emitting fallback strings in the given
// locale.
func NewExtractor(loc *locale.Bundle) *Extractor {
	return &Extractor{loc: loc}
}

// Extract fills the four PICO fields from title+abstract text. When no
// population pattern matches, the article's MeSH terms are scanned for
// disease-indicating terms and up to two are synthesized into a population
// string. Extraction never fails; unmatched fields stay empty.
func (e *Extractor) Extract(article core.Article) PICO {
	text := article.Title + " " + article.Abstract

	p := PICO{
		Population:   firstMatch(populationPatterns, text),
		Intervention: firstMatch(interventionPatterns, text),
		Comparison:   firstMatch(comparisonPatterns, text),
		Outcome:      firstMatch(outcomePatterns, text),
	}

	if p.Population == "" {
		if terms := diseaseTerms(article.MeshTerms, 2); len(terms) > 0 {
			p.Population = fmt.Sprintf(e.loc.PopulationFallback, strings.Join(terms, ", "))
		}
	}

	return p
}

// firstMatch evaluates patterns in order and returns the first successful
// capture, trimmed and truncated. Later patterns are never tried once one
// succeeds. Patterns without a capture group yield the whole match.
func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captured := m[0]
		if re.NumSubexp() > 0 {
			captured = m[1]
		}
		return truncate(strings.TrimSpace(captured), FieldMaxLen)
	}
	return ""
}

// diseaseTerms returns up to limit MeSH terms whose lowercase form contains
// a disease indicator, in their original order.
func diseaseTerms(meshTerms []string, limit int) []string {
	var found []string
	for _, term := range meshTerms {
		lower := strings.ToLower(term)
		for _, indicator := range diseaseIndicators {
			if strings.Contains(lower, indicator) {
				found = append(found, term)
				break
			}
		}
		if len(found) == limit {
			break
		}
	}
	return found
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}
