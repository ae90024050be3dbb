// Package report assembles the weekly research summary document: featured
// article selection, per-article structured summaries, executive findings,
// trend block, and research ideas.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"nephscope/internal/config"
	"nephscope/internal/core"
	"nephscope/internal/ideas"
	"nephscope/internal/locale"
	"nephscope/internal/pico"
	"nephscope/internal/summarize"
	"nephscope/internal/trends"
)

const (
	featuredLimit      = 10
	hotTopicLimit      = 10
	journalLimit       = 15
	pubTypeLimit       = 10
	meshLimit          = 30
	relatedTrendLimit  = 5
	keywordLimit       = 10
	sectionMaxLen      = 500
	fullAbstractMaxLen = 1000
	keyFindingTopics   = 3
	keyFindingJournals = 3
)

// ArticleSummary is the composed per-article spotlight entry.
type ArticleSummary struct {
	PMID           string              `json:"pmid"`
	Title          string              `json:"title"`
	Journal        string              `json:"journal"`
	PubDate        string              `json:"pub_date"`
	StudyType      summarize.StudyType `json:"study_type"`
	StudyTypeLabel string              `json:"study_type_label"`
	PICO           pico.PICO           `json:"pico"`
	Narrative      string              `json:"narrative"`
	Sections       map[string]string   `json:"sections"`
	RelatedTrends  []string            `json:"related_trends"`
	Keywords       []string            `json:"keywords"`
	MeshTerms      []string            `json:"mesh_terms"`
	IsHighImpact   bool                `json:"is_high_impact"`
	PubMedURL      string              `json:"pubmed_url"`
	DOI            string              `json:"doi"`
}

// ExecutiveSummary is the report's leading block.
type ExecutiveSummary struct {
	TotalCount      int      `json:"total_count"`
	HighImpactCount int      `json:"high_impact_count"`
	KeyFindings     []string `json:"key_findings"`
}

// TrendBlock is the report-facing view of the trend snapshot, with the
// distributions capped for presentation.
type TrendBlock struct {
	HotTopics           []trends.KeywordCount     `json:"hot_topics"`
	KeywordStats        map[string]map[string]int `json:"keyword_stats"`
	JournalDistribution map[string]int            `json:"journal_distribution"`
	PubTypeDistribution map[string]int            `json:"pub_type_distribution"`
}

// Document is the full weekly summary.
type Document struct {
	ID               string                          `json:"id"`
	GeneratedAt      time.Time                       `json:"generated_at"`
	ReportPeriod     string                          `json:"report_period"`
	ExecutiveSummary ExecutiveSummary                `json:"executive_summary"`
	CategoryStats    map[string]trends.CategoryStats `json:"category_stats"`
	Trends           TrendBlock                      `json:"trends"`
	FeaturedArticles []ArticleSummary                `json:"featured_articles"`
	ResearchIdeas    []ideas.Idea                    `json:"research_ideas"`
	MeshFrequency    map[string]int                  `json:"mesh_frequency"`
}

// Builder orchestrates the analysis components into one report.
type Builder struct {
	taxonomy   []config.TaxonomyCategory
	loc        *locale.Bundle
	aggregator *trends.Aggregator
	extractor  *pico.Extractor
	composer   *summarize.Composer
	generator  *ideas.Generator
}

// NewBuilder wires the analysis components from the given read-only
// analysis configuration and locale.
func NewBuilder(analysis config.Analysis, loc *locale.Bundle) *Builder {
	return &Builder{
		taxonomy:   analysis.Taxonomy,
		loc:        loc,
		aggregator: trends.NewAggregator(analysis.Taxonomy),
		extractor:  pico.NewExtractor(loc),
		composer:   summarize.NewComposer(loc),
		generator:  ideas.NewGenerator(analysis.Taxonomy, loc),
	}
}

// AnalyzeTrends exposes the underlying aggregator for callers that persist
// the snapshot on its own.
func (b *Builder) AnalyzeTrends(records core.RecordSet) *trends.Snapshot {
	return b.aggregator.Analyze(records)
}

// Build assembles the weekly summary document for the record set.
func (b *Builder) Build(records core.RecordSet) *Document {
	snap := b.aggregator.Analyze(records)
	all := records.Flatten()
	ideaList := b.generator.Generate(snap, records)
	featured := selectFeatured(all, featuredLimit)

	summaries := make([]ArticleSummary, 0, len(featured))
	for _, art := range featured {
		summaries = append(summaries, b.summarizeArticle(art))
	}

	hot := snap.TopKeywords
	if len(hot) > hotTopicLimit {
		hot = hot[:hotTopicLimit]
	}

	return &Document{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		ReportPeriod: b.reportPeriod(records),
		ExecutiveSummary: ExecutiveSummary{
			TotalCount:      snap.TotalCount,
			HighImpactCount: snap.HighImpactCount,
			KeyFindings:     b.keyFindings(all, snap),
		},
		CategoryStats: snap.PerCategoryStats,
		Trends: TrendBlock{
			HotTopics:           hot,
			KeywordStats:        snap.KeywordCounts,
			JournalDistribution: capCounts(snap.JournalDistribution, journalLimit),
			PubTypeDistribution: capCounts(snap.PubTypeDistribution, pubTypeLimit),
		},
		FeaturedArticles: summaries,
		ResearchIdeas:    ideaList,
		MeshFrequency:    capCounts(snap.MeshFrequency, meshLimit),
	}
}

// selectFeatured sorts records by (is_high_impact desc, pub_date string
// desc) and takes the first limit entries. The date comparison is lexical
// on purpose; parsing the free-text date would change the selection.
func selectFeatured(all []core.Article, limit int) []core.Article {
	featured := make([]core.Article, len(all))
	copy(featured, all)

	sort.SliceStable(featured, func(i, j int) bool {
		if featured[i].IsHighImpact != featured[j].IsHighImpact {
			return featured[i].IsHighImpact
		}
		return featured[i].PubDate > featured[j].PubDate
	})

	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// summarizeArticle builds the composed spotlight entry for one article.
func (b *Builder) summarizeArticle(art core.Article) ArticleSummary {
	studyType := b.composer.ClassifyStudyType(art)

	sections := make(map[string]string)
	for key, text := range b.composer.Sections(art.Abstract) {
		label := b.loc.SectionNames[key]
		if label == "" {
			label = key
		}
		sections[label] = truncate(text, sectionMaxLen)
	}
	if len(sections) == 0 {
		sections[b.loc.FullAbstractKey] = truncate(art.Abstract, fullAbstractMaxLen)
	}

	return ArticleSummary{
		PMID:           art.PMID,
		Title:          art.Title,
		Journal:        art.Journal,
		PubDate:        art.PubDate,
		StudyType:      studyType,
		StudyTypeLabel: b.composer.StudyTypeLabel(studyType),
		PICO:           b.extractor.Extract(art),
		Narrative:      b.composer.Narrative(art),
		Sections:       sections,
		RelatedTrends:  b.relatedTrends(art, relatedTrendLimit),
		Keywords:       capList(art.Keywords, keywordLimit),
		MeshTerms:      capList(art.MeshTerms, keywordLimit),
		IsHighImpact:   art.IsHighImpact,
		PubMedURL:      art.PubMedURL,
		DOI:            art.DOI,
	}
}

// relatedTrends lists the taxonomy keywords present in the article text as
// "category: keyword" tags, in taxonomy order.
func (b *Builder) relatedTrends(art core.Article, limit int) []string {
	text := strings.ToLower(art.Title + " " + art.Abstract)
	tags := []string{}
	for _, cat := range b.taxonomy {
		for _, kw := range cat.Keywords {
			if !strings.Contains(text, strings.ToLower(kw)) {
				continue
			}
			tags = append(tags, fmt.Sprintf("%s: %s", cat.Name, kw))
			if len(tags) == limit {
				return tags
			}
		}
	}
	return tags
}

// keyFindings applies the fixed 3-rule cascade; each rule independently
// appends zero or one sentence.
func (b *Builder) keyFindings(all []core.Article, snap *trends.Snapshot) []string {
	findings := []string{}

	hot := snap.TopKeywords
	if len(hot) > keyFindingTopics {
		hot = hot[:keyFindingTopics]
	}
	if len(hot) > 0 {
		items := make([]string, 0, len(hot))
		for _, kc := range hot {
			items = append(items, fmt.Sprintf(b.loc.FindingHotTopicItem, kc.Keyword, kc.Count))
		}
		findings = append(findings, fmt.Sprintf(b.loc.FindingHotTopics, strings.Join(items, ", ")))
	}

	highImpactCount := 0
	var journals []string
	seen := make(map[string]bool)
	for _, art := range all {
		if !art.IsHighImpact {
			continue
		}
		highImpactCount++
		if !seen[art.Journal] && len(journals) < keyFindingJournals {
			seen[art.Journal] = true
			journals = append(journals, art.Journal)
		}
	}
	if highImpactCount > 0 {
		findings = append(findings, fmt.Sprintf(b.loc.FindingHighImpact, highImpactCount, strings.Join(journals, ", ")))
	}

	rctCount := snap.PubTypeDistribution["Randomized Controlled Trial"]
	metaCount := snap.PubTypeDistribution["Meta-Analysis"]
	if rctCount > 0 || metaCount > 0 {
		findings = append(findings, fmt.Sprintf(b.loc.FindingEvidence, rctCount, metaCount))
	}

	return findings
}

// reportPeriod derives the period label from the first category's search
// window, or the locale's N/A marker when the set is empty.
func (b *Builder) reportPeriod(records core.RecordSet) string {
	ids := records.CategoryIDs()
	if len(ids) == 0 {
		return b.loc.ReportPeriodNA
	}
	return fmt.Sprintf(b.loc.ReportPeriod, records[ids[0]].DaysBack)
}

// capCounts keeps the top limit entries of a frequency map, breaking count
// ties by key so the cut is deterministic.
func capCounts(counts map[string]int, limit int) map[string]int {
	if len(counts) <= limit {
		return counts
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	capped := make(map[string]int, limit)
	for _, k := range keys[:limit] {
		capped[k] = counts[k]
	}
	return capped
}

func capList(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
