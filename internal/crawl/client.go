// Package crawl fetches science-fiction book records from OpenLibrary:
// a paged subject search yields work URLs, and each work page is parsed
// into a detailed record suitable for the analysis pipeline.
package crawl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/shelfstats/shelfstats/internal/logging"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client fetches and parses pages with retries and rate limiting.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	log     *logging.Logger
	baseURL string
}

// NewClient creates a crawler client. Requests retry transient failures up
// to three times with backoff and are throttled to rps requests per second
// (rps <= 0 disables throttling).
func NewClient(baseURL string, rps float64, log *logging.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", userAgent)
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Client{
		resty:   restyClient,
		limiter: limiter,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the crawl target root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Document fetches a URL and parses it into a goquery document, converting
// to UTF-8 based on detected charset.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.resty.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status())
	}
	return parseHTML(resp.Body())
}

// parseHTML decodes HTML bytes to UTF-8 using detected charset, falling
// back to direct parsing when detection or conversion fails.
func parseHTML(data []byte) (*goquery.Document, error) {
	detected := detectCharset(data)
	reader, err := charset.NewReader(bytes.NewReader(data), detected)
	if err != nil {
		return goquery.NewDocumentFromReader(bytes.NewReader(data))
	}
	return goquery.NewDocumentFromReader(reader)
}

func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
