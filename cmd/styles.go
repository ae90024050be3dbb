package cmd

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"nephscope/internal/report"
	"nephscope/internal/trends"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// printRunSummary prints a compact console digest of the generated report.
func printRunSummary(doc *report.Document) {
	fmt.Println(titleStyle.Render("📊 nephscope weekly summary"))
	fmt.Printf("%s %s\n", labelStyle.Render("period:"), doc.ReportPeriod)
	fmt.Printf("%s %d (%s %d)\n",
		labelStyle.Render("articles:"), doc.ExecutiveSummary.TotalCount,
		labelStyle.Render("high impact:"), doc.ExecutiveSummary.HighImpactCount)

	if len(doc.ExecutiveSummary.KeyFindings) > 0 {
		fmt.Println(sectionStyle.Render("key findings"))
		for _, finding := range doc.ExecutiveSummary.KeyFindings {
			fmt.Printf("  • %s\n", finding)
		}
	}

	if len(doc.CategoryStats) > 0 {
		fmt.Println(sectionStyle.Render("categories"))
		for _, id := range sortedCategoryIDs(doc.CategoryStats) {
			stats := doc.CategoryStats[id]
			fmt.Printf("  %s: %d articles, %d high impact\n", id, stats.Count, stats.HighImpactCount)
		}
	}

	if len(doc.Trends.HotTopics) > 0 {
		fmt.Println(sectionStyle.Render("hot topics"))
		topics := doc.Trends.HotTopics
		if len(topics) > 5 {
			topics = topics[:5]
		}
		for _, kc := range topics {
			fmt.Printf("  %s (%d)\n", highlightStyle.Render(kc.Keyword), kc.Count)
		}
	}

	if len(doc.ResearchIdeas) > 0 {
		fmt.Println(sectionStyle.Render("research ideas"))
		ideaList := doc.ResearchIdeas
		if len(ideaList) > 3 {
			ideaList = ideaList[:3]
		}
		for _, idea := range ideaList {
			if idea.Keyword != "" {
				fmt.Printf("  [%s] %s\n", idea.Kind, highlightStyle.Render(idea.Keyword))
			} else {
				fmt.Printf("  [%s]\n", idea.Kind)
			}
		}
	}
}

func sortedCategoryIDs(stats map[string]trends.CategoryStats) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
