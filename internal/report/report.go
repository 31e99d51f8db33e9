// Package report assembles the standard set of aggregations over a cleaned
// dataset and renders them as text, JSON, or chart files. It is the one
// place that decides which analyses a run produces.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shelfstats/shelfstats/internal/analyze"
	"github.com/shelfstats/shelfstats/internal/dataset"
)

// Book is one entry of the top-rated ranking.
type Book struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
}

// Report holds every aggregation of one analysis run.
type Report struct {
	Books          int             `json:"books"`
	Dropped        int             `json:"dropped_rows"`
	Rating         analyze.Summary `json:"rating"`
	Pages          analyze.Summary `json:"pages"`
	ByYear         []analyze.Count `json:"by_year"`
	ByDecade       []analyze.Count `json:"by_decade"`
	ByLanguage     []analyze.Count `json:"by_language"`
	TopSubjects    []analyze.Count `json:"top_subjects"`
	TopRated       []Book          `json:"top_rated"`
	EditionsRating float64         `json:"editions_rating_correlation"`
	YearRating     float64         `json:"year_rating_correlation"`
}

// Build computes all aggregations for a cleaned dataset. dropped is the row
// count removed by the cleaner, carried through for reporting. Everything
// here is a pure function of the dataset; an empty dataset produces an
// empty (but renderable) report.
func Build(ds *dataset.Dataset, dropped, topN int) *Report {
	rep := &Report{
		Books:   ds.Len(),
		Dropped: dropped,
		Rating:  analyze.Summarize(ds.Ratings()),
	}

	var pages []float64
	for _, rec := range ds.Records {
		if rec.Pages > 0 {
			pages = append(pages, float64(rec.Pages))
		}
	}
	rep.Pages = analyze.Summarize(pages)

	rep.ByYear = analyze.SortByKey(analyze.CountBy(ds, func(r dataset.Record) string {
		return strconv.Itoa(r.Year)
	}))
	rep.ByDecade = analyze.SortByKey(analyze.CountBy(ds, func(r dataset.Record) string {
		return fmt.Sprintf("%ds", r.Decade())
	}))
	rep.ByLanguage = analyze.SortByCount(analyze.CountBy(ds, func(r dataset.Record) string {
		return r.Language
	}))
	rep.TopSubjects = analyze.Head(analyze.SortByCount(analyze.CountByEach(ds,
		func(r dataset.Record) []string { return r.Subjects })), topN)

	for _, rec := range analyze.TopN(ds, topN, analyze.ByRating) {
		rep.TopRated = append(rep.TopRated, Book{
			Title:  rec.Title,
			Year:   rec.Year,
			Rating: rec.Rating,
		})
	}

	var editions, years, ratings []float64
	for _, rec := range ds.Records {
		editions = append(editions, float64(rec.EditionCount))
		years = append(years, float64(rec.Year))
		ratings = append(ratings, rec.Rating)
	}
	// Length mismatch is impossible here, the series come from one pass.
	rep.EditionsRating, _ = analyze.Correlation(editions, ratings)
	rep.YearRating, _ = analyze.Correlation(years, ratings)

	return rep
}

// WriteText prints the human-readable run summary.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "books analyzed: %d (dropped %d malformed rows)\n", r.Books, r.Dropped)
	fmt.Fprintf(w, "rating: mean=%.2f median=%.2f stddev=%.2f min=%.1f max=%.1f\n",
		r.Rating.Mean, r.Rating.Median, r.Rating.StdDev, r.Rating.Min, r.Rating.Max)
	if r.Pages.N > 0 {
		fmt.Fprintf(w, "pages:  mean=%.0f median=%.0f (n=%d)\n",
			r.Pages.Mean, r.Pages.Median, r.Pages.N)
	}
	fmt.Fprintf(w, "correlation editions/rating: %+.3f\n", r.EditionsRating)
	fmt.Fprintf(w, "correlation year/rating:     %+.3f\n", r.YearRating)

	fmt.Fprintln(w, "\nbooks by decade:")
	for _, c := range r.ByDecade {
		fmt.Fprintf(w, "  %-8s %d\n", c.Key, c.N)
	}

	if len(r.TopSubjects) > 0 {
		fmt.Fprintln(w, "\ntop subjects:")
		for _, c := range r.TopSubjects {
			fmt.Fprintf(w, "  %-40s %d\n", c.Key, c.N)
		}
	}

	fmt.Fprintln(w, "\ntop rated:")
	for i, b := range r.TopRated {
		fmt.Fprintf(w, "  %2d. %-40s %d  %.2f\n", i+1, b.Title, b.Year, b.Rating)
	}
}
