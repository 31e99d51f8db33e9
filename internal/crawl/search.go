package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SearchResult is one hit of a subject search: enough to fetch the work
// page later.
type SearchResult struct {
	Title   string
	WorkKey string
	URL     string
}

// SearchSubject pages through OpenLibrary search results for a subject and
// returns the listed works. Only works with more than five editions are
// requested, which filters out sparse records. Pagination stops early when
// a page yields no hits.
func (c *Client) SearchSubject(ctx context.Context, subject string, maxPages int) ([]SearchResult, error) {
	var results []SearchResult

	for page := 1; page <= maxPages; page++ {
		pageURL := c.searchURL(subject, page)
		c.log.Info("fetching search page",
			zap.String("subject", subject),
			zap.Int("page", page))

		doc, err := c.Document(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			c.log.Warn("search page failed", zap.String("url", pageURL), zap.Error(err))
			continue
		}

		hits := parseSearchPage(doc, c.baseURL)
		if len(hits) == 0 {
			c.log.Info("no results on page, stopping pagination", zap.Int("page", page))
			break
		}
		results = append(results, hits...)
	}

	c.log.Info("subject search done",
		zap.String("subject", subject),
		zap.Int("results", len(results)))
	return results, nil
}

func (c *Client) searchURL(subject string, page int) string {
	q := fmt.Sprintf(`subject_key:%q edition_count:{5 TO *}`, subject)
	return fmt.Sprintf("%s/search?q=%s&page=%d", c.baseURL, url.QueryEscape(q), page)
}

func parseSearchPage(doc *goquery.Document, baseURL string) []SearchResult {
	items := doc.Find("div.searchResultItem")
	if items.Length() == 0 {
		items = doc.Find("div.book-item")
	}
	if items.Length() == 0 {
		items = doc.Find("li.searchResultItem")
	}

	var hits []SearchResult
	items.Each(func(_ int, item *goquery.Selection) {
		link := item.Find("h3 a").First()
		if link.Length() == 0 {
			link = item.Find("a.results").First()
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		hits = append(hits, SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			WorkKey: workKeyFromHref(href),
			URL:     baseURL + href,
		})
	})
	return hits
}

// workKeyFromHref extracts "OL27448W" from "/works/OL27448W/The_Lord_of_the_Rings".
func workKeyFromHref(href string) string {
	_, after, found := strings.Cut(href, "/works/")
	if !found {
		return ""
	}
	key, _, _ := strings.Cut(after, "/")
	key, _, _ = strings.Cut(key, "?")
	return key
}
