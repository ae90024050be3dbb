// Package summarize classifies study types, splits structured abstracts
// into labeled sections, and composes a localized narrative synopsis. All
// of it is deterministic text processing over the article record.
package summarize

import (
	"fmt"
	"regexp"
	"strings"

	"nephscope/internal/core"
	"nephscope/internal/locale"
)

// ParagraphMaxLen bounds every normalized narrative paragraph body.
const ParagraphMaxLen = 300

// fallbackAbstractLen bounds the raw-abstract excerpt used when no section
// header was recognized.
const fallbackAbstractLen = 800

// StudyType is the fixed study classification vocabulary.
type StudyType string

const (
	StudyTypeRCT              StudyType = "RCT"
	StudyTypeMetaAnalysis     StudyType = "meta-analysis"
	StudyTypeSystematicReview StudyType = "systematic-review"
	StudyTypeCohort           StudyType = "cohort-study"
	StudyTypeCaseControl      StudyType = "case-control-study"
	StudyTypeGeneric          StudyType = "generic-study"
)

// Canonical section keys, in narrative priority order.
const (
	SectionBackground = "background"
	SectionObjective  = "objective"
	SectionMethods    = "methods"
	SectionResults    = "results"
	SectionConclusion = "conclusion"
)

// sectionPattern pairs a recognized header pattern with its section key.
// Each pattern captures text up to the next recognized header or end of
// string. Evaluation order is fixed.
type sectionPattern struct {
	key string
	re  *regexp.Regexp
}

var sectionPatterns = []sectionPattern{
	{SectionBackground, regexp.MustCompile(`(?is)BACKGROUND[:\s]*(.+?)(?:METHODS|OBJECTIVE|AIM|PURPOSE|$)`)},
	{SectionObjective, regexp.MustCompile(`(?is)(?:OBJECTIVE|AIM|PURPOSE)S?[:\s]*(.+?)(?:METHODS|DESIGN|$)`)},
	{SectionMethods, regexp.MustCompile(`(?is)METHODS[:\s]*(.+?)(?:RESULTS|FINDINGS|$)`)},
	{SectionResults, regexp.MustCompile(`(?is)(?:RESULTS|FINDINGS)[:\s]*(.+?)(?:CONCLUSIONS?|DISCUSSION|INTERPRETATION|$)`)},
	{SectionConclusion, regexp.MustCompile(`(?is)(?:CONCLUSIONS?|INTERPRETATION)[:\s]*(.+?)$`)},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Composer renders localized article synopses.
type Composer struct {
	loc *locale.Bundle
}

// NewComposer creates a composer emitting text in the given locale.
func NewComposer(loc *locale.Bundle) *Composer {
	return &Composer{loc: loc}
}

// ClassifyStudyType applies the fixed-priority classification cascade.
// The first matching rule wins; later rules are not evaluated.
func (c *Composer) ClassifyStudyType(article core.Article) StudyType {
	for _, pt := range article.PubTypes {
		if strings.Contains(pt, "Randomized Controlled Trial") {
			return StudyTypeRCT
		}
	}
	for _, pt := range article.PubTypes {
		if strings.Contains(pt, "Meta-Analysis") {
			return StudyTypeMetaAnalysis
		}
	}
	for _, pt := range article.PubTypes {
		if strings.Contains(pt, "Systematic Review") {
			return StudyTypeSystematicReview
		}
	}
	abstract := strings.ToLower(article.Abstract)
	if strings.Contains(abstract, "cohort") {
		return StudyTypeCohort
	}
	if strings.Contains(abstract, "case-control") {
		return StudyTypeCaseControl
	}
	return StudyTypeGeneric
}

// StudyTypeLabel returns the localized display label for a study type.
func (c *Composer) StudyTypeLabel(st StudyType) string {
	return c.loc.StudyTypes[string(st)]
}

// Sections splits a structured abstract into canonical-keyed sections. A
// header absent from the abstract simply does not appear in the map.
func (c *Composer) Sections(abstract string) map[string]string {
	sections := make(map[string]string)
	for _, sp := range sectionPatterns {
		m := sp.re.FindStringSubmatch(abstract)
		if m == nil {
			continue
		}
		sections[sp.key] = strings.TrimSpace(m[1])
	}
	return sections
}

// Narrative composes the localized multi-paragraph synopsis. Sections are
// emitted in fixed priority (objective or background, then methods,
// results, conclusion); when none was recognized a single paragraph is
// built from the leading part of the raw abstract.
func (c *Composer) Narrative(article core.Article) string {
	studyType := c.ClassifyStudyType(article)
	subject := c.loc.NarrativeSubjects[string(studyType)]
	sections := c.Sections(article.Abstract)

	var parts []string

	if text, ok := sections[SectionObjective]; ok {
		parts = append(parts, fmt.Sprintf(c.loc.NarrativeObjective, subject, normalize(text, ParagraphMaxLen)))
	} else if text, ok := sections[SectionBackground]; ok {
		parts = append(parts, fmt.Sprintf(c.loc.NarrativeBackground, normalize(text, ParagraphMaxLen)))
	}
	if text, ok := sections[SectionMethods]; ok {
		parts = append(parts, fmt.Sprintf(c.loc.NarrativeMethods, normalize(text, ParagraphMaxLen)))
	}
	if text, ok := sections[SectionResults]; ok {
		parts = append(parts, fmt.Sprintf(c.loc.NarrativeResults, normalize(text, ParagraphMaxLen)))
	}
	if text, ok := sections[SectionConclusion]; ok {
		parts = append(parts, fmt.Sprintf(c.loc.NarrativeConclusion, normalize(text, ParagraphMaxLen)))
	}

	if len(parts) == 0 {
		excerpt := truncateRunes(article.Abstract, fallbackAbstractLen)
		return fmt.Sprintf(c.loc.NarrativeFallback, normalize(excerpt, ParagraphMaxLen))
	}
	return strings.Join(parts, "\n\n")
}

// normalize collapses whitespace and truncates to max runes, preferring to
// cut at the rightmost period inside the window when it falls past the
// window midpoint; otherwise it hard-cuts and appends an ellipsis marker.
func normalize(text string, max int) string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := -1
	for i := max - 1; i >= 0; i-- {
		if runes[i] == '.' {
			cut = i
			break
		}
	}
	if cut > max/2 {
		return string(runes[:cut+1])
	}
	return string(runes[:max]) + "..."
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
