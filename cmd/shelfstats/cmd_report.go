package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/shelfstats/shelfstats/internal/dataset"
	"github.com/shelfstats/shelfstats/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the aggregations as JSON",
	Long: `report runs the same load/clean/aggregate pipeline as analyze but
emits the result as JSON on stdout for machine consumption instead of
rendering charts.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("data-dir", "", "directory holding dataset CSV files")
	reportCmd.Flags().Int("top", 0, "size of top-N rankings")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Data.Dir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("top") {
		cfg.Charts.TopN, _ = flags.GetInt("top")
	}

	ds, err := dataset.LoadDir(cfg.Data.Dir, cfg.Data.Pattern)
	if err != nil {
		return err
	}
	clean, dropped := dataset.Clean(ds)

	rep := report.Build(clean, dropped, cfg.Charts.TopN)
	out, err := sonic.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
