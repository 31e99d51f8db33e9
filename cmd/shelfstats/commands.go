package main

import (
	"github.com/spf13/cobra"

	"github.com/shelfstats/shelfstats/internal/config"
	"github.com/shelfstats/shelfstats/internal/logging"
)

var (
	cfg *config.Config
	log *logging.Logger

	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "shelfstats",
	Short: "Exploratory analysis of science-fiction book records",
	Long: `shelfstats loads a CSV dataset of book records, cleans it, computes
descriptive statistics, and writes summary charts. Run without arguments it
executes the full pipeline with default settings; the crawl subcommand
builds the dataset from OpenLibrary.`,
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file overlaying environment settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging with console output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadOrDefault()
		if configFile != "" {
			if err := cfg.ApplyFile(configFile); err != nil {
				return err
			}
		}
		if verbose {
			log = logging.NewDevelopment()
			return nil
		}
		logger, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			return err
		}
		log = logger
		return nil
	}
}
