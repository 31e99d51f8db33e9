package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfstats/shelfstats/internal/dataset"
	"github.com/shelfstats/shelfstats/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Load the dataset, compute aggregations, and write charts",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("data-dir", "", "directory holding dataset CSV files")
	analyzeCmd.Flags().String("out-dir", "", "directory for chart PNG files")
	analyzeCmd.Flags().Int("top", 0, "size of top-N rankings")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalyze is the full pipeline: load, clean, aggregate, visualize.
// It also backs the bare root invocation.
func runAnalyze(cmd *cobra.Command, args []string) error {
	applyAnalyzeFlags(cmd)

	ds, err := dataset.LoadDir(cfg.Data.Dir, cfg.Data.Pattern)
	if err != nil {
		return err
	}
	clean, dropped := dataset.Clean(ds)
	log.Info("dataset loaded",
		zap.String("dir", cfg.Data.Dir),
		zap.Int("rows", ds.Len()),
		zap.Int("dropped", dropped))

	rep := report.Build(clean, dropped, cfg.Charts.TopN)
	rep.WriteText(os.Stdout)

	written, err := report.WriteCharts(clean, rep, cfg.Charts.OutDir, cfg.Charts.Bins, log)
	if err != nil {
		return err
	}
	fmt.Println("\ncharts written:")
	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// applyAnalyzeFlags overrides config with explicitly set flags. Flags that
// were not passed keep the environment/file settings.
func applyAnalyzeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Data.Dir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("out-dir") {
		cfg.Charts.OutDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("top") {
		cfg.Charts.TopN, _ = flags.GetInt("top")
	}
}
