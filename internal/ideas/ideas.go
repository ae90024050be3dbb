// Package ideas turns aggregate trend output into a ranked list of
// actionable research suggestions. Generation order is fixed; consumers
// wanting the top suggestions take a prefix.
package ideas

import (
	"fmt"

	"nephscope/internal/config"
	"nephscope/internal/core"
	"nephscope/internal/locale"
	"nephscope/internal/trends"
)

// Kind is the research idea vocabulary.
type Kind string

const (
	KindHotTopic       Kind = "hot-topic-extension"
	KindResearchGap    Kind = "research-gap"
	KindCrossDomain    Kind = "cross-domain"
	KindMethodological Kind = "methodological"
	KindHighImpact     Kind = "high-impact-follow-up"
)

const (
	hotTopicLimit     = 10
	researchGapLimit  = 5
	gapCountMin       = 1
	gapCountMax       = 3
	relatedTitleLimit = 3
	relatedTitleLen   = 50
)

// Idea is one actionable research suggestion.
type Idea struct {
	Kind          Kind     `json:"kind"`                     // Suggestion category
	Keyword       string   `json:"keyword"`                  // Keyword or theme the idea builds on
	Frequency     int      `json:"frequency,omitempty"`      // Article count behind the idea, when derived from counts
	Suggestion    string   `json:"suggestion"`               // Free-text suggestion body
	StudyDesign   string   `json:"study_design"`             // Suggested study design
	RelatedTitles []string `json:"related_titles,omitempty"` // Example article titles, truncated
}

// Generator derives ideas from a trend snapshot and the record set.
type Generator struct {
	taxonomy []config.TaxonomyCategory
	loc      *locale.Bundle
}

// NewGenerator creates a generator over the given taxonomy and locale.
func NewGenerator(taxonomy []config.TaxonomyCategory, loc *locale.Bundle) *Generator {
	return &Generator{taxonomy: taxonomy, loc: loc}
}

// Generate produces the idea list in fixed order: hot-topic extensions,
// research gaps, one cross-domain idea, two fixed methodological ideas,
// and one high-impact follow-up. The list is never globally re-sorted.
func (g *Generator) Generate(snap *trends.Snapshot, records core.RecordSet) []Idea {
	var list []Idea

	// 1. One idea per top-10 hot keyword.
	hot := snap.TopKeywords
	if len(hot) > hotTopicLimit {
		hot = hot[:hotTopicLimit]
	}
	for _, kc := range hot {
		list = append(list, Idea{
			Kind:        KindHotTopic,
			Keyword:     kc.Keyword,
			Frequency:   kc.Count,
			Suggestion:  fmt.Sprintf(g.loc.HotTopicBody, kc.Keyword, kc.Count),
			StudyDesign: g.loc.HotTopicDesign,
		})
	}

	// 2. Sparsely studied keywords, capped to the first few found in
	// taxonomy iteration order.
	gaps := 0
	for _, merged := range g.mergedKeywords(snap.KeywordCounts) {
		if gaps == researchGapLimit {
			break
		}
		if merged.total < gapCountMin || merged.total > gapCountMax {
			continue
		}
		list = append(list, Idea{
			Kind:        KindResearchGap,
			Keyword:     merged.keyword,
			Frequency:   merged.total,
			Suggestion:  fmt.Sprintf(g.loc.ResearchGapBody, merged.keyword, merged.category, merged.total),
			StudyDesign: g.loc.ResearchGapDesign,
		})
		gaps++
	}

	// 3. One cross-domain idea when at least two categories have articles.
	populated := 0
	for _, id := range records.CategoryIDs() {
		if len(records[id].Articles) > 0 {
			populated++
		}
	}
	if populated >= 2 {
		list = append(list, Idea{
			Kind:        KindCrossDomain,
			Keyword:     g.loc.CrossDomain.Keyword,
			Suggestion:  g.loc.CrossDomain.Body,
			StudyDesign: g.loc.CrossDomain.Design,
		})
	}

	// 4. Fixed methodological-innovation ideas, independent of the data.
	for _, seed := range g.loc.Methodological {
		list = append(list, Idea{
			Kind:        KindMethodological,
			Keyword:     seed.Keyword,
			Suggestion:  seed.Body,
			StudyDesign: seed.Design,
		})
	}

	// 5. High-impact follow-up with example titles.
	var highImpactTitles []string
	highImpactCount := 0
	for _, art := range records.Flatten() {
		if !art.IsHighImpact {
			continue
		}
		highImpactCount++
		if len(highImpactTitles) < relatedTitleLimit {
			highImpactTitles = append(highImpactTitles, truncate(art.Title, relatedTitleLen))
		}
	}
	if highImpactCount > 0 {
		list = append(list, Idea{
			Kind:          KindHighImpact,
			Keyword:       g.loc.HighImpactKeyword,
			Suggestion:    fmt.Sprintf(g.loc.HighImpactBody, highImpactCount),
			StudyDesign:   g.loc.HighImpactDesign,
			RelatedTitles: highImpactTitles,
		})
	}

	return list
}

type mergedKeyword struct {
	keyword  string
	category string // first taxonomy category carrying the keyword
	total    int
}

// mergedKeywords sums each keyword's counts across the full taxonomy,
// preserving first-seen order.
func (g *Generator) mergedKeywords(counts map[string]map[string]int) []mergedKeyword {
	var merged []mergedKeyword
	index := make(map[string]int)

	for _, cat := range g.taxonomy {
		kws, ok := counts[cat.Name]
		if !ok {
			continue
		}
		for _, kw := range cat.Keywords {
			n, ok := kws[kw]
			if !ok {
				continue
			}
			if i, seen := index[kw]; seen {
				merged[i].total += n
				continue
			}
			index[kw] = len(merged)
			merged = append(merged, mergedKeyword{keyword: kw, category: cat.Name, total: n})
		}
	}
	return merged
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
