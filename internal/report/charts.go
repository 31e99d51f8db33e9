package report

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shelfstats/shelfstats/internal/chart"
	"github.com/shelfstats/shelfstats/internal/dataset"
	"github.com/shelfstats/shelfstats/internal/logging"
)

// WriteCharts renders the report's aggregations as PNG files under outDir
// and returns the written paths. Empty aggregations render as blank charts
// with a warning; only real render or write failures abort.
func WriteCharts(ds *dataset.Dataset, rep *Report, outDir string, bins int, log *logging.Logger) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	save := func(name string, render func(path string) error, empty bool) error {
		path := filepath.Join(outDir, name)
		if empty {
			log.Warn("aggregation is empty, rendering blank chart", zap.String("chart", name))
		}
		if err := render(path); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := save("books_by_decade.png", func(path string) error {
		return chart.Bar(rep.ByDecade, path, chart.Options{
			Title:  "Books by decade of first publication",
			XLabel: "decade",
			YLabel: "books",
		})
	}, len(rep.ByDecade) == 0); err != nil {
		return written, err
	}

	if err := save("top_subjects.png", func(path string) error {
		return chart.Bar(rep.TopSubjects, path, chart.Options{
			Title:  "Most common subjects",
			XLabel: "subject",
			YLabel: "books",
		})
	}, len(rep.TopSubjects) == 0); err != nil {
		return written, err
	}

	ratings := ds.Ratings()
	if err := save("rating_distribution.png", func(path string) error {
		return chart.Histogram(ratings, bins, path, chart.Options{
			Title:  "Rating distribution",
			XLabel: "rating",
			YLabel: "books",
		})
	}, len(ratings) == 0); err != nil {
		return written, err
	}

	yearPts := make([]chart.Point, 0, ds.Len())
	editionPts := make([]chart.Point, 0, ds.Len())
	for _, rec := range ds.Records {
		yearPts = append(yearPts, chart.Point{X: float64(rec.Year), Y: rec.Rating})
		editionPts = append(editionPts, chart.Point{X: float64(rec.EditionCount), Y: rec.Rating})
	}

	if err := save("year_vs_rating.png", func(path string) error {
		return chart.Scatter(yearPts, path, chart.Options{
			Title:  "First publication year vs rating",
			XLabel: "year",
			YLabel: "rating",
		})
	}, len(yearPts) == 0); err != nil {
		return written, err
	}

	if err := save("editions_vs_rating.png", func(path string) error {
		return chart.Scatter(editionPts, path, chart.Options{
			Title:  "Edition count vs rating",
			XLabel: "editions",
			YLabel: "rating",
		})
	}, len(editionPts) == 0); err != nil {
		return written, err
	}

	return written, nil
}
