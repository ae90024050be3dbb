package trends

import (
	"sort"
	"strings"
	"time"

	"nephscope/internal/config"
	"nephscope/internal/core"
)

// KeywordCount is one (keyword, count) ranking entry.
type KeywordCount struct {
	Keyword string `json:"keyword"` // Trend keyword
	Count   int    `json:"count"`   // Number of articles mentioning it
}

// JournalCount is one (journal, count) ranking entry.
type JournalCount struct {
	Journal string `json:"journal"` // Journal title
	Count   int    `json:"count"`   // Number of articles published there
}

// CategoryStats summarizes one search category independently of the others.
type CategoryStats struct {
	Count           int            `json:"count"`             // Articles in the category
	HighImpactCount int            `json:"high_impact_count"` // High-impact articles in the category
	TopJournals     []JournalCount `json:"top_journals"`      // Top-5 journals within the category
}

// Snapshot is the aggregate trend picture derived from one record set.
// Distribution maps carry full counts; report-facing caps are applied by the
// report builder, not here.
type Snapshot struct {
	TotalCount          int                       `json:"total_count"`           // Articles across all categories
	HighImpactCount     int                       `json:"high_impact_count"`     // High-impact articles across all categories
	AnalyzedAt          time.Time                 `json:"analyzed_at"`           // When the snapshot was computed
	KeywordCounts       map[string]map[string]int `json:"keyword_counts"`        // taxonomy category -> keyword -> article count
	TopKeywords         []KeywordCount            `json:"top_keywords"`          // Top-20 keywords merged across the taxonomy
	JournalDistribution map[string]int            `json:"journal_distribution"`  // journal -> article count
	PubTypeDistribution map[string]int            `json:"pub_type_distribution"` // publication type -> occurrence count
	MeshFrequency       map[string]int            `json:"mesh_frequency"`        // MeSH term -> occurrence count
	PerCategoryStats    map[string]CategoryStats  `json:"per_category_stats"`    // category display name -> stats
}

// Aggregator scans record sets and derives trend snapshots. The taxonomy is
// read-only; category and keyword order fix first-seen tie breaking.
type Aggregator struct {
	taxonomy []config.TaxonomyCategory
}

// NewAggregator creates an aggregator over the given keyword taxonomy.
func NewAggregator(taxonomy []config.TaxonomyCategory) *Aggregator {
	return &Aggregator{taxonomy: taxonomy}
}

// Analyze derives a Snapshot from the record set. An empty set yields a
// zero-valued snapshot, never an error.
func (a *Aggregator) Analyze(records core.RecordSet) *Snapshot {
	all := records.Flatten()

	snap := &Snapshot{
		TotalCount:          len(all),
		AnalyzedAt:          time.Now().UTC(),
		KeywordCounts:       make(map[string]map[string]int),
		TopKeywords:         []KeywordCount{},
		JournalDistribution: make(map[string]int),
		PubTypeDistribution: make(map[string]int),
		MeshFrequency:       make(map[string]int),
		PerCategoryStats:    make(map[string]CategoryStats),
	}

	for _, art := range all {
		if art.IsHighImpact {
			snap.HighImpactCount++
		}

		// Keyword membership counts at most once per article per keyword,
		// regardless of repeat occurrences in the text.
		text := strings.ToLower(art.Title + " " + art.Abstract)
		for _, cat := range a.taxonomy {
			for _, kw := range cat.Keywords {
				if strings.Contains(text, strings.ToLower(kw)) {
					m := snap.KeywordCounts[cat.Name]
					if m == nil {
						m = make(map[string]int)
						snap.KeywordCounts[cat.Name] = m
					}
					m[kw]++
				}
			}
		}

		journal := art.Journal
		if journal == "" {
			journal = "Unknown"
		}
		snap.JournalDistribution[journal]++

		for _, pt := range art.PubTypes {
			snap.PubTypeDistribution[pt]++
		}
		for _, mesh := range art.MeshTerms {
			snap.MeshFrequency[mesh]++
		}
	}

	snap.TopKeywords = a.topKeywords(snap.KeywordCounts, 20)

	for _, id := range records.CategoryIDs() {
		data := records[id]
		name := data.Name
		if name == "" {
			name = id
		}
		snap.PerCategoryStats[name] = a.categoryStats(data.Articles)
	}

	return snap
}

// topKeywords merges per-taxonomy counts into one ranking. Iteration follows
// taxonomy order so equal counts keep their first-seen position.
func (a *Aggregator) topKeywords(counts map[string]map[string]int, limit int) []KeywordCount {
	merged := []KeywordCount{}
	index := make(map[string]int)

	for _, cat := range a.taxonomy {
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
				merged[i].Count += n
				continue
			}
			index[kw] = len(merged)
			merged = append(merged, KeywordCount{Keyword: kw, Count: n})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// categoryStats computes count, high-impact count, and the top-5 journals
// from the category's own articles so category boundaries never leak.
func (a *Aggregator) categoryStats(articles []core.Article) CategoryStats {
	stats := CategoryStats{Count: len(articles), TopJournals: []JournalCount{}}

	journals := make(map[string]int)
	var order []string
	for _, art := range articles {
		if art.IsHighImpact {
			stats.HighImpactCount++
		}
		if _, seen := journals[art.Journal]; !seen {
			order = append(order, art.Journal)
		}
		journals[art.Journal]++
	}

	ranked := make([]JournalCount, 0, len(order))
	for _, j := range order {
		ranked = append(ranked, JournalCount{Journal: j, Count: journals[j]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	stats.TopJournals = ranked

	return stats
}
