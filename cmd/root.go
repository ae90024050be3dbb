package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nephscope/internal/config"
	"nephscope/internal/locale"
	"nephscope/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nephscope",
	Short: "nephscope tracks and analyzes recent nephrology literature from PubMed",
	Long: `nephscope fetches recent high-quality nephrology studies from PubMed,
derives research trends, composes localized article summaries with PICO
extraction, suggests research ideas, and publishes the weekly report as
JSON documents and an HTML page.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nephscope.yaml)")
}

func initConfig() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
	logger.Init(cfg.App.LogLevel)
}

// bundle returns the locale used for generated text.
func bundle() *locale.Bundle {
	return locale.TraditionalChinese()
}
