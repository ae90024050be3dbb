// Package locale holds the localized strings used when composing narrative
// summaries, research ideas, and report findings. A Bundle is plain data
// passed into each component at construction, so tests and callers can swap
// languages without touching process-wide state.
package locale

// IdeaSeed is a fixed, data-independent research idea template.
type IdeaSeed struct {
	Keyword string
	Body    string
	Design  string
}

// Bundle carries every localized string the analysis engine emits.
type Bundle struct {
	// Structured-summary section labels, keyed by canonical section id
	// (background, objective, methods, results, conclusion).
	SectionNames map[string]string
	// Key used for the single-entry fallback when no section header matched.
	FullAbstractKey string

	// Study-type display labels keyed by the classification enum value.
	StudyTypes map[string]string
	// Study-type subject nouns used to open the narrative objective line.
	NarrativeSubjects map[string]string

	// Narrative paragraph formats.
	NarrativeObjective  string // subject, objective text
	NarrativeBackground string
	NarrativeMethods    string
	NarrativeResults    string
	NarrativeConclusion string
	NarrativeFallback   string

	// Population string synthesized from MeSH disease terms.
	PopulationFallback string

	// Research idea templates.
	HotTopicBody      string // keyword, count
	HotTopicDesign    string
	ResearchGapBody   string // keyword, taxonomy category, count
	ResearchGapDesign string
	CrossDomain       IdeaSeed
	Methodological    []IdeaSeed
	HighImpactKeyword string
	HighImpactBody    string // article count
	HighImpactDesign  string

	// Report strings.
	ReportPeriod        string // days back
	ReportPeriodNA      string
	FindingHotTopics    string // joined topic list
	FindingHotTopicItem string // keyword, count
	FindingHighImpact   string // count, joined journal list
	FindingEvidence     string // RCT count, meta-analysis count
}

// TraditionalChinese returns the default zh-TW bundle.
func TraditionalChinese() *Bundle {
	return &Bundle{
		SectionNames: map[string]string{
			"background": "背景",
			"objective":  "目的",
			"methods":    "方法",
			"results":    "結果",
			"conclusion": "結論",
		},
		FullAbstractKey: "完整摘要",

		StudyTypes: map[string]string{
			"RCT":                "隨機對照試驗",
			"meta-analysis":      "統合分析",
			"systematic-review":  "系統性回顧",
			"cohort-study":       "世代研究",
			"case-control-study": "病例對照研究",
			"generic-study":      "研究",
		},
		NarrativeSubjects: map[string]string{
			"RCT":                "本隨機對照試驗",
			"meta-analysis":      "本統合分析",
			"systematic-review":  "本系統性回顧",
			"cohort-study":       "本世代研究",
			"case-control-study": "本病例對照研究",
			"generic-study":      "本研究",
		},

		NarrativeObjective:  "【研究目的】%s旨在探討%s",
		NarrativeBackground: "【研究背景】%s",
		NarrativeMethods:    "【研究方法】%s",
		NarrativeResults:    "【主要結果】%s",
		NarrativeConclusion: "【結論】%s",
		NarrativeFallback:   "【摘要】%s",

		PopulationFallback: "患有 %s 的病人",

		HotTopicBody: "目前 '%s' 是研究熱點 (%d 篇相關文章)，可考慮：\n" +
			"1. 在本地族群中驗證相關發現\n" +
			"2. 結合其他熱門主題進行交叉研究\n" +
			"3. 針對特定亞群進行深入分析",
		HotTopicDesign: "觀察性研究 / 回顧性分析",
		ResearchGapBody: "'%s' (%s) 目前研究較少 (%d 篇)，\n" +
			"可能是新興或未被充分探索的領域，可考慮：\n" +
			"1. 文獻回顧以了解現有證據\n" +
			"2. 前瞻性觀察研究\n" +
			"3. 與既有研究主題結合",
		ResearchGapDesign: "系統性回顧 / 前瞻性研究",
		CrossDomain: IdeaSeed{
			Keyword: "兒童腎臟學 + 成人腎臟學",
			Body: "考慮進行兒童至成人的長期追蹤研究：\n" +
				"1. 兒童期腎臟疾病對成年後的影響\n" +
				"2. 早期介入對長期預後的效果\n" +
				"3. 生命歷程觀點的腎臟病研究",
			Design: "長期追蹤世代研究",
		},
		Methodological: []IdeaSeed{
			{
				Keyword: "AI/機器學習",
				Body: "應用人工智慧於腎臟病研究：\n" +
					"1. 建立腎功能預測模型\n" +
					"2. 影像自動判讀系統\n" +
					"3. 治療反應預測",
				Design: "回顧性資料分析 + 模型開發",
			},
			{
				Keyword: "真實世界數據",
				Body: "利用真實世界數據進行研究：\n" +
					"1. 健保資料庫分析\n" +
					"2. 電子病歷數據挖掘\n" +
					"3. 多中心登錄資料分析",
				Design: "真實世界研究 (RWE)",
			},
		},
		HighImpactKeyword: "重要發現複製與延伸",
		HighImpactBody: "本週有 %d 篇高影響力期刊文章，可考慮：\n" +
			"1. 在本地族群中驗證這些發現\n" +
			"2. 探索可能的機轉\n" +
			"3. 研究是否有族群差異",
		HighImpactDesign: "驗證性研究 / 機轉研究",

		ReportPeriod:        "過去 %d 天",
		ReportPeriodNA:      "N/A",
		FindingHotTopics:    "本週熱門研究主題: %s",
		FindingHotTopicItem: "%s (%d篇)",
		FindingHighImpact:   "高影響力期刊發表 %d 篇，包括: %s",
		FindingEvidence:     "高品質證據: %d 篇 RCT, %d 篇統合分析",
	}
}
