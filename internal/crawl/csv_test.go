package crawl

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfstats/shelfstats/internal/dataset"
)

func TestSearchCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.csv")
	in := []SearchResult{
		{Title: "Dune", WorkKey: "OL893415W", URL: "https://openlibrary.org/works/OL893415W/Dune"},
		{Title: "Foundation", WorkKey: "OL46125W", URL: "https://openlibrary.org/works/OL46125W/Foundation"},
	}

	require.NoError(t, WriteSearchCSV(in, path))
	out, err := ReadSearchCSV(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadSearchCSV(t *testing.T) {
	t.Run("missing url column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, writeCSV(path, []string{"title"}, [][]string{{"Dune"}}))

		_, err := ReadSearchCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "book_url")
	})

	t.Run("rows without a url are skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gaps.csv")
		require.NoError(t, writeCSV(path, searchHeader, [][]string{
			{"Dune", "OL893415W", "https://openlibrary.org/works/OL893415W/Dune"},
			{"No URL", "OL0W", ""},
		}))

		out, err := ReadSearchCSV(path)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSearchCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}

// The detail CSV must load back through the dataset loader: this is the
// contract between the crawler and the analysis pipeline.
func TestDetailsCSVFeedsLoader(t *testing.T) {
	details := []*BookDetails{
		{
			SourceURL:      "https://openlibrary.org/works/OL893415W/Dune",
			Title:          "Dune",
			Authors:        []string{"Frank Herbert"},
			FirstPublished: "1965",
			PublishDate:    "August 1965",
			Subjects:       []string{"Science Fiction", "Ecology"},
			Language:       "English",
			ISBN:           "9780441013593",
			EditionCount:   55,
			Rating:         4.2,
			RatingCount:    3125,
			Pages:          412,
			Description:    "Ecology & empire.",
			WorkKey:        "OL893415W",
		},
	}

	path := filepath.Join(t.TempDir(), "books_detailed.csv")
	require.NoError(t, WriteDetailsCSV(details, path))

	ds, err := dataset.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	rec := ds.Records[0]
	assert.Equal(t, "Dune", rec.Title)
	assert.Equal(t, []string{"Frank Herbert"}, rec.Authors)
	assert.Equal(t, 1965, rec.Year)
	assert.Equal(t, 4.2, rec.Rating)
	assert.Equal(t, 3125, rec.RatingCount)
	assert.Equal(t, 55, rec.EditionCount)
	assert.Equal(t, 412, rec.Pages)
	assert.Equal(t, []string{"Science Fiction", "Ecology"}, rec.Subjects)
	assert.Equal(t, "OL893415W", rec.WorkKey)
}

func TestDetailsFromCSV(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/works/OL893415W/Dune" {
			fmt.Fprint(w, workPageHTML)
			return
		}
		http.NotFound(w, r)
	}))

	path := filepath.Join(t.TempDir(), "search.csv")
	require.NoError(t, WriteSearchCSV([]SearchResult{
		{Title: "Dune (search)", WorkKey: "OL893415W", URL: client.BaseURL() + "/works/OL893415W/Dune"},
		{Title: "Gone", WorkKey: "OL0W", URL: client.BaseURL() + "/works/OL0W/Gone"},
	}, path))

	details, err := client.DetailsFromCSV(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, details, 1, "dead URL is skipped, not fatal")

	assert.Equal(t, "Dune", details[0].Title)
	assert.Equal(t, "Dune (search)", details[0].OriginalTitle)
	assert.Equal(t, "OL893415W", details[0].WorkKey)
}
