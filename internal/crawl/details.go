package crawl

import (
	"context"
	stdhtml "html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
)

// BookDetails is everything extracted from one OpenLibrary work page.
// Field names mirror the CSV columns the analysis pipeline loads.
type BookDetails struct {
	SourceURL      string
	Title          string
	Authors        []string
	FirstPublished string
	PublishDate    string
	Subjects       []string
	Language       string
	ISBN           string
	EditionCount   int
	Rating         float64
	RatingCount    int
	Pages          int
	Description    string
	OriginalTitle  string
	WorkKey        string
}

var (
	firstPublishedRe = regexp.MustCompile(`\((\d{4})\)`)
	editionCountRe   = regexp.MustCompile(`(?i)(\d+)\s*editions?\b`)
	ratingRe         = regexp.MustCompile(`(\d\.\d+)\s*\((\d+)\s*ratings?\)`)

	// Tag stripper for description text. Work pages embed markup in
	// descriptions; only the plain text is kept.
	stripTags = bluemonday.StrictPolicy()
)

// BookDetails fetches a work page and extracts its book record. Fields that
// cannot be found stay at their zero value; only fetch and parse failures
// return an error.
func (c *Client) BookDetails(ctx context.Context, url string) (*BookDetails, error) {
	doc, err := c.Document(ctx, url)
	if err != nil {
		return nil, err
	}

	d := &BookDetails{SourceURL: url}

	// Title: schema.org name, falling back to the page heading.
	title := doc.Find(`span[itemprop="name"]`).First()
	if title.Length() == 0 {
		title = doc.Find("h1").First()
	}
	d.Title = strings.TrimSpace(title.Text())

	// Authors live inside the desktop title block; elsewhere on the page
	// author links also appear in carousels and would duplicate.
	doc.Find(`div.work-title-and-author.desktop a[itemprop="author"]`).
		Each(func(_ int, sel *goquery.Selection) {
			if name := strings.TrimSpace(sel.Text()); name != "" {
				d.Authors = append(d.Authors, name)
			}
		})

	if span := doc.Find("span.first-published-date").First(); span.Length() > 0 {
		text := span.Text()
		if m := firstPublishedRe.FindStringSubmatch(text); m != nil {
			d.FirstPublished = m[1]
		} else {
			d.FirstPublished = strings.TrimSpace(text)
		}
	}

	d.PublishDate = strings.TrimSpace(doc.Find(`span[itemprop="datePublished"]`).First().Text())
	d.Language = strings.TrimSpace(doc.Find(`span[itemprop="inLanguage"]`).First().Text())
	d.ISBN = strings.TrimSpace(doc.Find(`dd[itemprop="isbn"]`).First().Text())

	d.Subjects = extractSubjects(doc)
	d.Description = extractDescription(doc)

	pageText := doc.Text()
	if m := editionCountRe.FindStringSubmatch(pageText); m != nil {
		d.EditionCount, _ = strconv.Atoi(m[1])
	}

	// Rating renders as "3.8 (8 ratings)" inside the ratingValue span.
	if m := ratingRe.FindStringSubmatch(doc.Find(`span[itemprop="ratingValue"]`).First().Text()); m != nil {
		d.Rating, _ = strconv.ParseFloat(m[1], 64)
		d.RatingCount, _ = strconv.Atoi(m[2])
	}

	pages := strings.TrimSpace(doc.Find(`span.edition-pages[itemprop="numberOfPages"]`).First().Text())
	if n, err := strconv.Atoi(pages); err == nil {
		d.Pages = n
	}

	return d, nil
}

// extractSubjects scans the whole document for subject links via XPath.
// Subject anchors carry no stable class, only the /subjects/ href shape.
func extractSubjects(doc *goquery.Document) []string {
	if len(doc.Nodes) == 0 {
		return nil
	}
	nodes, err := htmlquery.QueryAll(doc.Nodes[0], `//a[contains(@href, "/subjects/")]`)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool, len(nodes))
	var subjects []string
	for _, n := range nodes {
		text := strings.TrimSpace(htmlquery.InnerText(n))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		subjects = append(subjects, text)
	}
	return subjects
}

func extractDescription(doc *goquery.Document) string {
	sel := doc.Find("div.book-description").First()
	if sel.Length() == 0 {
		sel = doc.Find(`div[itemprop="description"]`).First()
	}
	raw, err := sel.Html()
	if err != nil {
		return ""
	}
	return normalizeWhitespace(stdhtml.UnescapeString(stripTags.Sanitize(raw)))
}
