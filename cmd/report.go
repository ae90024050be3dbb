package cmd

import (
	"github.com/spf13/cobra"

	"nephscope/internal/email"
	"nephscope/internal/logger"
	"nephscope/internal/store"
)

var (
	reportOutputDir string
	reportFilename  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the latest weekly summary as an HTML report file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportOutputDir != "" {
			cfg.Output.Directory = reportOutputDir
		}

		st, err := store.NewStore(cfg.Output)
		if err != nil {
			return err
		}

		doc, err := st.LoadSummary()
		if err != nil {
			return err
		}

		page, err := email.RenderHTML(doc)
		if err != nil {
			return err
		}

		path, err := email.WriteReportFile(page, cfg.Output.Directory, reportFilename)
		if err != nil {
			return err
		}
		logger.Infof("HTML report written to %s", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "", "data directory holding the generated documents")
	reportCmd.Flags().StringVar(&reportFilename, "out", "weekly_report.html", "filename for the rendered report")
	rootCmd.AddCommand(reportCmd)
}
