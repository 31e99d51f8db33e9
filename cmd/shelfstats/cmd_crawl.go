package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelfstats/shelfstats/internal/crawl"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Build the dataset by crawling OpenLibrary",
	Long: `crawl runs a paged OpenLibrary subject search, writes the hits to a
search CSV, then fetches every work page and writes the detailed records to
a second CSV that the analyze command can load.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().String("subject", "", "OpenLibrary subject key, e.g. science_fiction")
	crawlCmd.Flags().Int("max-pages", 0, "search result pages to fetch")
	crawlCmd.Flags().String("out-dir", "", "directory for the output CSV files")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("subject") {
		cfg.Crawl.Subject, _ = flags.GetString("subject")
	}
	if flags.Changed("max-pages") {
		cfg.Crawl.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("out-dir") {
		cfg.Crawl.OutDir, _ = flags.GetString("out-dir")
	}

	if err := os.MkdirAll(cfg.Crawl.OutDir, 0o755); err != nil {
		return err
	}

	client := crawl.NewClient(cfg.Crawl.BaseURL, cfg.Crawl.RequestsPerSecond, log)
	ctx := cmd.Context()

	results, err := client.SearchSubject(ctx, cfg.Crawl.Subject, cfg.Crawl.MaxPages)
	if err != nil {
		return err
	}
	searchPath := filepath.Join(cfg.Crawl.OutDir, fmt.Sprintf("books_%s_search.csv", cfg.Crawl.Subject))
	if err := crawl.WriteSearchCSV(results, searchPath); err != nil {
		return err
	}
	log.Info("search results written",
		zap.String("path", searchPath),
		zap.Int("books", len(results)))

	details, err := client.DetailsFromCSV(ctx, searchPath)
	if err != nil {
		return err
	}
	detailPath := filepath.Join(cfg.Crawl.OutDir, fmt.Sprintf("books_%s_detailed.csv", cfg.Crawl.Subject))
	if err := crawl.WriteDetailsCSV(details, detailPath); err != nil {
		return err
	}
	log.Info("detailed records written",
		zap.String("path", detailPath),
		zap.Int("books", len(details)))

	fmt.Printf("wrote %d search rows to %s\n", len(results), searchPath)
	fmt.Printf("wrote %d detailed rows to %s\n", len(details), detailPath)
	return nil
}
