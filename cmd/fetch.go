package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nephscope/internal/fetch"
	"nephscope/internal/logger"
	"nephscope/internal/store"
)

var (
	fetchDaysBack       int
	fetchMaxResults     int
	fetchHighImpactOnly bool
	fetchOutputDir      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch recent articles from PubMed and generate the weekly report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if fetchOutputDir != "" {
			cfg.Output.Directory = fetchOutputDir
		}
		daysBack := fetchDaysBack
		if daysBack <= 0 {
			daysBack = cfg.PubMed.DaysBack
		}
		maxResults := fetchMaxResults
		if maxResults <= 0 {
			maxResults = cfg.PubMed.MaxResults
		}

		st, err := store.NewStore(cfg.Output)
		if err != nil {
			return err
		}

		client := fetch.NewClient(cfg.PubMed, cfg.Analysis.HighImpactJournals)
		records, err := client.FetchAll(ctx, daysBack, maxResults, fetchHighImpactOnly)
		if err != nil {
			return err
		}

		path, err := st.SaveArticles(records)
		if err != nil {
			return err
		}
		logger.Infof("articles saved to %s", path)

		doc, err := runAnalysis(st, records)
		if err != nil {
			return err
		}

		printRunSummary(doc)
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchDaysBack, "days-back", 0, "search window in days (default from config)")
	fetchCmd.Flags().IntVar(&fetchMaxResults, "max-results", 0, "maximum articles per category (default from config)")
	fetchCmd.Flags().BoolVar(&fetchHighImpactOnly, "high-impact-only", false, "keep only articles from high-impact journals")
	fetchCmd.Flags().StringVar(&fetchOutputDir, "output-dir", "", "data directory for the generated documents")
	rootCmd.AddCommand(fetchCmd)
}
