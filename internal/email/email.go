// Package email renders the weekly summary document as a self-contained
// HTML report suitable for email delivery or the dashboard landing page.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"nephscope/internal/ideas"
	"nephscope/internal/report"
	"nephscope/internal/trends"
)

const (
	featuredDisplayLimit = 5
	ideaDisplayLimit     = 3
	hotTopicDisplayLimit = 10
)

// ReportData is the template payload for one rendered weekly report.
type ReportData struct {
	Title           string
	Date            string
	Period          string
	TotalCount      int
	HighImpactCount int
	KeyFindings     []string
	CategoryStats   map[string]trends.CategoryStats
	HotTopics       []trends.KeywordCount
	Featured        []report.ArticleSummary
	Ideas           []ideas.Idea
}

// RenderHTML renders the weekly summary as a standalone HTML page.
func RenderHTML(doc *report.Document) (string, error) {
	featured := doc.FeaturedArticles
	if len(featured) > featuredDisplayLimit {
		featured = featured[:featuredDisplayLimit]
	}
	ideaList := doc.ResearchIdeas
	if len(ideaList) > ideaDisplayLimit {
		ideaList = ideaList[:ideaDisplayLimit]
	}
	hotTopics := doc.Trends.HotTopics
	if len(hotTopics) > hotTopicDisplayLimit {
		hotTopics = hotTopics[:hotTopicDisplayLimit]
	}

	data := ReportData{
		Title:           "腎臟學研究週報",
		Date:            doc.GeneratedAt.Format("2006年01月02日"),
		Period:          doc.ReportPeriod,
		TotalCount:      doc.ExecutiveSummary.TotalCount,
		HighImpactCount: doc.ExecutiveSummary.HighImpactCount,
		KeyFindings:     doc.ExecutiveSummary.KeyFindings,
		CategoryStats:   doc.CategoryStats,
		HotTopics:       hotTopics,
		Featured:        featured,
		Ideas:           ideaList,
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// WriteReportFile writes rendered HTML into the output directory, creating
// it when missing, and returns the file path.
func WriteReportFile(content, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = "data"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return path, nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="zh-TW">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Date}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .container { background-color: #ffffff; border-radius: 10px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; border-bottom: 3px solid #1E3A5F; padding-bottom: 20px; margin-bottom: 30px; }
        .header h1 { color: #1E3A5F; margin: 0; font-size: 28px; }
        .header p { color: #666; margin: 8px 0 0; }
        .metrics { display: flex; justify-content: space-around; flex-wrap: wrap; margin-bottom: 30px; }
        .metric { text-align: center; padding: 15px; }
        .metric-value { font-size: 32px; font-weight: bold; color: #1E3A5F; }
        .metric-label { color: #666; font-size: 14px; }
        .section { margin-bottom: 30px; }
        .section h2 { color: #1E3A5F; border-left: 4px solid #1E3A5F; padding-left: 10px; font-size: 20px; }
        .finding { background-color: #f0f7ff; border-radius: 6px; padding: 10px 14px; margin-bottom: 8px; }
        .trend-tag { display: inline-block; background-color: #e8f0fe; color: #1E3A5F; border-radius: 14px; padding: 4px 12px; margin: 3px; font-size: 14px; }
        .article { border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px; margin-bottom: 14px; }
        .article h3 { margin: 0 0 6px; font-size: 16px; }
        .article .meta { color: #666; font-size: 13px; margin-bottom: 8px; }
        .badge { display: inline-block; background-color: #1E3A5F; color: #fff; border-radius: 4px; padding: 2px 8px; font-size: 12px; margin-right: 6px; }
        .high-impact { background-color: #b45309; }
        .narrative { white-space: pre-line; font-size: 14px; margin-top: 8px; }
        .pico { font-size: 13px; color: #444; margin-top: 8px; }
        .idea { background-color: #fefce8; border-radius: 8px; padding: 14px; margin-bottom: 10px; white-space: pre-line; }
        .footer { text-align: center; color: #999; font-size: 12px; border-top: 1px solid #e2e8f0; padding-top: 16px; }
        a { color: #1E3A5F; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>{{.Date}} | {{.Period}} | 自動追蹤最新高品質腎臟學臨床研究</p>
        </div>

        <div class="metrics">
            <div class="metric">
                <div class="metric-value">{{.TotalCount}}</div>
                <div class="metric-label">總文章數</div>
            </div>
            <div class="metric">
                <div class="metric-value">{{.HighImpactCount}}</div>
                <div class="metric-label">高影響力期刊</div>
            </div>
            {{range $name, $stats := .CategoryStats}}
            <div class="metric">
                <div class="metric-value">{{$stats.Count}}</div>
                <div class="metric-label">{{$name}}</div>
            </div>
            {{end}}
        </div>

        <div class="section">
            <h2>本週重點發現</h2>
            {{range .KeyFindings}}<div class="finding">{{.}}</div>
            {{else}}<div class="finding">本週暫無特別發現</div>
            {{end}}
        </div>

        <div class="section">
            <h2>熱門研究主題</h2>
            <div>
                {{range .HotTopics}}<span class="trend-tag">{{.Keyword}} ({{.Count}})</span>
                {{else}}<p>本週暫無熱門主題</p>
                {{end}}
            </div>
        </div>

        <div class="section">
            <h2>重點文章</h2>
            {{range .Featured}}
            <div class="article">
                <h3>{{if .PubMedURL}}<a href="{{.PubMedURL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
                <div class="meta">
                    <span class="badge">{{.StudyTypeLabel}}</span>
                    {{if .IsHighImpact}}<span class="badge high-impact">高影響力期刊</span>{{end}}
                    {{.Journal}} | {{.PubDate}}
                </div>
                <div class="narrative">{{.Narrative}}</div>
                <div class="pico">
                    {{if .PICO.Population}}<div><strong>P:</strong> {{.PICO.Population}}</div>{{end}}
                    {{if .PICO.Intervention}}<div><strong>I:</strong> {{.PICO.Intervention}}</div>{{end}}
                    {{if .PICO.Comparison}}<div><strong>C:</strong> {{.PICO.Comparison}}</div>{{end}}
                    {{if .PICO.Outcome}}<div><strong>O:</strong> {{.PICO.Outcome}}</div>{{end}}
                </div>
            </div>
            {{else}}<p>本週暫無重點文章</p>
            {{end}}
        </div>

        <div class="section">
            <h2>研究想法建議</h2>
            {{range .Ideas}}
            <div class="idea"><strong>[{{.Kind}}] {{.Keyword}}</strong>
{{.Suggestion}}
建議研究類型: {{.StudyDesign}}</div>
            {{else}}<p>本週暫無研究想法</p>
            {{end}}
        </div>

        <div class="footer">
            <p>本報告由系統自動生成 | 資料來源: PubMed</p>
        </div>
    </div>
</body>
</html>
`
