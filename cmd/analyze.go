package cmd

import (
	"github.com/spf13/cobra"

	"nephscope/internal/core"
	"nephscope/internal/logger"
	"nephscope/internal/report"
	"nephscope/internal/store"
)

var analyzeOutputDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Re-run the analysis over previously fetched articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeOutputDir != "" {
			cfg.Output.Directory = analyzeOutputDir
		}

		st, err := store.NewStore(cfg.Output)
		if err != nil {
			return err
		}

		records, err := st.LoadArticles()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			logger.Warnf("no persisted articles found, statistics will be empty")
		}

		doc, err := runAnalysis(st, records)
		if err != nil {
			return err
		}

		printRunSummary(doc)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output-dir", "", "data directory for the generated documents")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalysis runs the analysis engine over the record set and persists the
// trend snapshot and weekly summary documents.
func runAnalysis(st *store.Store, records core.RecordSet) (*report.Document, error) {
	builder := report.NewBuilder(cfg.Analysis, bundle())

	snap := builder.AnalyzeTrends(records)
	trendsPath, err := st.SaveTrends(snap)
	if err != nil {
		return nil, err
	}
	logger.Infof("trend snapshot saved to %s", trendsPath)

	doc := builder.Build(records)
	summaryPath, err := st.SaveSummary(doc)
	if err != nil {
		return nil, err
	}
	logger.Infof("weekly summary saved to %s", summaryPath)

	return doc, nil
}
