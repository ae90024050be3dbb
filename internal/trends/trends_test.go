package trends

import (
	"reflect"
	"testing"

	"nephscope/internal/config"
	"nephscope/internal/core"
)

func testTaxonomy() []config.TaxonomyCategory {
	return []config.TaxonomyCategory{
		{Name: "治療方法", Keywords: []string{"dialysis", "transplant", "SGLT2"}},
		{Name: "研究主題", Keywords: []string{"CKD", "dialysis"}},
	}
}

func testRecords() core.RecordSet {
	return core.RecordSet{
		"pediatric_nephrology": {
			Name:     "Pediatric Nephrology",
			DaysBack: 7,
			Articles: []core.Article{
				{
					PMID:         "1001",
					Title:        "SGLT2 inhibitors and CKD progression",
					Abstract:     "Patients on dialysis were studied. Dialysis outcomes improved.",
					Journal:      "Kidney International",
					IsHighImpact: true,
					PubTypes:     []string{"Randomized Controlled Trial", "Journal Article"},
					MeshTerms:    []string{"Renal Dialysis"},
				},
				{
					PMID:     "1002",
					Title:    "Long-term outcomes after transplant",
					Abstract: "A retrospective review.",
					Journal:  "",
					PubTypes: []string{"Journal Article"},
				},
			},
		},
		"adult_nephrology": {
			Name:     "Adult Nephrology",
			DaysBack: 7,
			Articles: []core.Article{
				{
					PMID:      "2001",
					Title:     "Biomarkers of CKD",
					Abstract:  "An observational analysis.",
					Journal:   "Kidney International",
					PubTypes:  []string{"Journal Article"},
					MeshTerms: []string{"Biomarkers", "Renal Insufficiency, Chronic"},
				},
			},
		},
	}
}

func TestAnalyzeCounts(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	snap := agg.Analyze(testRecords())

	if snap.TotalCount != 3 {
		t.Errorf("expected total count 3, got %d", snap.TotalCount)
	}
	if snap.HighImpactCount != 1 {
		t.Errorf("expected high impact count 1, got %d", snap.HighImpactCount)
	}
	if snap.JournalDistribution["Kidney International"] != 2 {
		t.Errorf("expected 2 Kidney International articles, got %d", snap.JournalDistribution["Kidney International"])
	}
	if snap.JournalDistribution["Unknown"] != 1 {
		t.Errorf("expected 1 Unknown journal article, got %d", snap.JournalDistribution["Unknown"])
	}
	if snap.PubTypeDistribution["Journal Article"] != 3 {
		t.Errorf("expected 3 Journal Article entries, got %d", snap.PubTypeDistribution["Journal Article"])
	}
	if snap.MeshFrequency["Renal Dialysis"] != 1 {
		t.Errorf("expected Renal Dialysis mesh count 1, got %d", snap.MeshFrequency["Renal Dialysis"])
	}
}

func TestAnalyzeKeywordMembership(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	snap := agg.Analyze(testRecords())

	// "dialysis" appears three times in one article's text but the article
	// contributes only once.
	if got := snap.KeywordCounts["治療方法"]["dialysis"]; got != 1 {
		t.Errorf("expected dialysis count 1 in 治療方法, got %d", got)
	}
	if got := snap.KeywordCounts["研究主題"]["dialysis"]; got != 1 {
		t.Errorf("expected dialysis count 1 in 研究主題, got %d", got)
	}
	if got := snap.KeywordCounts["研究主題"]["CKD"]; got != 2 {
		t.Errorf("expected CKD count 2, got %d", got)
	}
	if got := snap.KeywordCounts["治療方法"]["transplant"]; got != 1 {
		t.Errorf("expected transplant count 1, got %d", got)
	}
}

func TestTopKeywordsMergeAndOrder(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	snap := agg.Analyze(testRecords())

	// dialysis merges across both categories to 2; CKD also counts 2 but is
	// seen later in taxonomy order, so dialysis ranks first.
	if len(snap.TopKeywords) != 4 {
		t.Fatalf("expected 4 top keywords, got %d", len(snap.TopKeywords))
	}
	if snap.TopKeywords[0].Keyword != "dialysis" || snap.TopKeywords[0].Count != 2 {
		t.Errorf("expected dialysis (2) first, got %s (%d)", snap.TopKeywords[0].Keyword, snap.TopKeywords[0].Count)
	}
	if snap.TopKeywords[1].Keyword != "CKD" || snap.TopKeywords[1].Count != 2 {
		t.Errorf("expected CKD (2) second, got %s (%d)", snap.TopKeywords[1].Keyword, snap.TopKeywords[1].Count)
	}
}

func TestAnalyzeIsRepeatable(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	records := testRecords()

	first := agg.Analyze(records)
	second := agg.Analyze(records)

	first.AnalyzedAt = second.AnalyzedAt
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical snapshots for the same input:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeEmptyRecordSet(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	snap := agg.Analyze(core.RecordSet{})

	if snap.TotalCount != 0 {
		t.Errorf("expected total count 0, got %d", snap.TotalCount)
	}
	if snap.HighImpactCount != 0 {
		t.Errorf("expected high impact count 0, got %d", snap.HighImpactCount)
	}
	if snap.TopKeywords == nil || len(snap.TopKeywords) != 0 {
		t.Errorf("expected empty top keywords slice, got %v", snap.TopKeywords)
	}
	if snap.KeywordCounts == nil || snap.JournalDistribution == nil || snap.PerCategoryStats == nil {
		t.Error("expected non-nil maps on empty snapshot")
	}
	if snap.AnalyzedAt.IsZero() {
		t.Error("expected analyzed timestamp to be set")
	}
}

func TestCategoryStatsIsolation(t *testing.T) {
	agg := NewAggregator(testTaxonomy())
	snap := agg.Analyze(testRecords())

	pediatric, ok := snap.PerCategoryStats["Pediatric Nephrology"]
	if !ok {
		t.Fatal("expected stats for Pediatric Nephrology")
	}
	if pediatric.Count != 2 {
		t.Errorf("expected pediatric count 2, got %d", pediatric.Count)
	}
	if pediatric.HighImpactCount != 1 {
		t.Errorf("expected pediatric high impact count 1, got %d", pediatric.HighImpactCount)
	}

	adult, ok := snap.PerCategoryStats["Adult Nephrology"]
	if !ok {
		t.Fatal("expected stats for Adult Nephrology")
	}
	if adult.Count != 1 || adult.HighImpactCount != 0 {
		t.Errorf("expected adult stats (1, 0), got (%d, %d)", adult.Count, adult.HighImpactCount)
	}
	if len(adult.TopJournals) != 1 || adult.TopJournals[0].Journal != "Kidney International" {
		t.Errorf("unexpected adult top journals: %v", adult.TopJournals)
	}
}

func TestCategoryStatsTopJournalOrder(t *testing.T) {
	articles := []core.Article{
		{PMID: "1", Journal: "A"},
		{PMID: "2", Journal: "B"},
		{PMID: "3", Journal: "B"},
		{PMID: "4", Journal: "C"},
	}
	agg := NewAggregator(nil)
	stats := agg.categoryStats(articles)

	if len(stats.TopJournals) != 3 {
		t.Fatalf("expected 3 journals, got %d", len(stats.TopJournals))
	}
	if stats.TopJournals[0].Journal != "B" || stats.TopJournals[0].Count != 2 {
		t.Errorf("expected B (2) first, got %s (%d)", stats.TopJournals[0].Journal, stats.TopJournals[0].Count)
	}
	// A and C tie at 1; first-seen order keeps A ahead.
	if stats.TopJournals[1].Journal != "A" || stats.TopJournals[2].Journal != "C" {
		t.Errorf("expected tie order A then C, got %s then %s", stats.TopJournals[1].Journal, stats.TopJournals[2].Journal)
	}
}
