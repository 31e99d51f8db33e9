package crawl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var searchHeader = []string{"title", "work_key", "book_url"}

var detailsHeader = []string{
	"source_url", "title", "authors", "first_published", "publish_date",
	"subjects", "language", "isbn", "edition_count", "rating",
	"number_of_ratings", "pages", "description", "original_title", "work_key",
}

// WriteSearchCSV writes subject search results to a CSV file.
func WriteSearchCSV(results []SearchResult, path string) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Title, r.WorkKey, r.URL})
	}
	return writeCSV(path, searchHeader, rows)
}

// ReadSearchCSV reads a search-result CSV previously written by
// WriteSearchCSV (or any CSV with title, work_key, and book_url columns).
func ReadSearchCSV(path string) ([]SearchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[strings.TrimSpace(col)] = i
	}
	urlCol, ok := index["book_url"]
	if !ok {
		return nil, fmt.Errorf("read %s: column %q not found, available: %v",
			path, "book_url", rows[0])
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var results []SearchResult
	for _, row := range rows[1:] {
		if urlCol >= len(row) || strings.TrimSpace(row[urlCol]) == "" {
			continue
		}
		results = append(results, SearchResult{
			Title:   field(row, "title"),
			WorkKey: field(row, "work_key"),
			URL:     strings.TrimSpace(row[urlCol]),
		})
	}
	return results, nil
}

// WriteDetailsCSV writes detailed book records to a CSV file in the column
// layout the dataset loader expects.
func WriteDetailsCSV(details []*BookDetails, path string) error {
	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{
			d.SourceURL,
			d.Title,
			strings.Join(d.Authors, "; "),
			d.FirstPublished,
			d.PublishDate,
			strings.Join(d.Subjects, "; "),
			d.Language,
			d.ISBN,
			strconv.Itoa(d.EditionCount),
			strconv.FormatFloat(d.Rating, 'f', -1, 64),
			strconv.Itoa(d.RatingCount),
			strconv.Itoa(d.Pages),
			d.Description,
			d.OriginalTitle,
			d.WorkKey,
		})
	}
	return writeCSV(path, detailsHeader, rows)
}

// DetailsFromCSV fetches details for every work URL in a search-result CSV.
// Per-URL failures are logged and skipped so one dead page does not lose
// the rest of the batch.
func (c *Client) DetailsFromCSV(ctx context.Context, path string) ([]*BookDetails, error) {
	results, err := ReadSearchCSV(path)
	if err != nil {
		return nil, err
	}

	details := make([]*BookDetails, 0, len(results))
	for i, r := range results {
		c.log.Info("fetching book details",
			zap.Int("n", i+1),
			zap.Int("total", len(results)),
			zap.String("url", r.URL))

		d, err := c.BookDetails(ctx, r.URL)
		if err != nil {
			if ctx.Err() != nil {
				return details, ctx.Err()
			}
			c.log.Warn("book page failed", zap.String("url", r.URL), zap.Error(err))
			continue
		}
		d.OriginalTitle = r.Title
		d.WorkKey = r.WorkKey
		details = append(details, d)
	}

	c.log.Info("detail crawl done",
		zap.Int("fetched", len(details)),
		zap.Int("requested", len(results)))
	return details, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
