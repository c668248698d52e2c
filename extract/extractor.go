package extract

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxContentLength bounds the excerpt returned for a single page.
const MaxContentLength = 7000

const (
	// minUsableLength is the threshold a strategy's output must exceed
	// before it is accepted.
	minUsableLength = 200

	// minBlockLength filters nav labels and captions out of the
	// paragraph/heading strategy.
	minBlockLength = 50

	defaultTimeout = 10 * time.Second
)

// skipDomains lists platforms known to block scraping or to return
// non-article content. Matching URLs are rejected without a network call.
var skipDomains = []string{
	"youtube.com", "twitter.com", "facebook.com",
	"instagram.com", "pinterest.com",
}

// strippedSelectors hold boilerplate that would dilute the answerable
// content; they are removed before any strategy runs.
const strippedSelectors = "script, style, nav, header, footer, iframe, form"

// Browser-like request signature to reduce bot-blocking false negatives.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.5"
)

// strategy is one ordered heuristic turning parsed HTML into plain text.
// Strategies are tried in priority order; the first whose output exceeds
// minUsableLength wins.
type strategy func(doc *goquery.Document) string

var strategies = []strategy{containerText, blockText, documentText}

// Extractor fetches pages and extracts bounded plain-text excerpts.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 10 second timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) error {
		if client != nil {
			e.client = client
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates a new content extractor.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default().With("component", "extract"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Fetch returns a bounded plain-text excerpt of the page at url.
//
// Fetch never fails: denylisted hosts, network errors, non-200 responses,
// unparseable bodies, and pages without enough extractable text all yield
// the empty string. Callers cannot distinguish those cases and must treat
// an empty result as "no usable content".
func (e *Extractor) Fetch(ctx context.Context, url string) string {
	for _, domain := range skipDomains {
		if strings.Contains(url, domain) {
			e.logger.Debug("skipping denylisted url", "url", url)
			return ""
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.logger.Debug("building request failed", "url", url, "err", err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("fetch failed", "url", url, "err", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Debug("fetch returned unexpected status", "url", url, "status", resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.logger.Debug("parsing page failed", "url", url, "err", err)
		return ""
	}

	doc.Find(strippedSelectors).Remove()

	for _, strat := range strategies {
		if content := strat(doc); len(content) > minUsableLength {
			return truncate(content, MaxContentLength)
		}
	}

	e.logger.Debug("no strategy produced usable content", "url", url)
	return ""
}

// containerText concatenates the text of structural content containers.
func containerText(doc *goquery.Document) string {
	var parts []string
	doc.Find("article, main, div.content, div.article-body, div.entry-content, section.content").
		Each(func(_ int, s *goquery.Selection) {
			if text := normalize(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})
	return strings.Join(parts, " ")
}

// blockText concatenates paragraph and heading elements, keeping only blocks
// whose own text exceeds minBlockLength.
func blockText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		text := normalize(s.Text())
		if len(text) > minBlockLength {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// documentText is the last resort: all visible text, whitespace-normalized.
func documentText(doc *goquery.Document) string {
	return normalize(doc.Text())
}

// normalize collapses all runs of whitespace into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate clips s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
