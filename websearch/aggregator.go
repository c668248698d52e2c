package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/answerit/core"
)

// DefaultBaseURL is the serper-compatible search endpoint used when no
// override is configured.
const DefaultBaseURL = "https://google.serper.dev/search"

// MaxResults bounds the merged, deduplicated result list. The cap limits the
// downstream fetch cost of a single query.
const MaxResults = 7

const defaultTimeout = 30 * time.Second

// searchKind is one category of query issued to the search provider with its
// own requested result count.
type searchKind struct {
	Type string
	Num  int
}

// Kinds are queried in this order. The counts are policy constants, not
// tunable per call.
var searchKinds = []searchKind{
	{Type: "search", Num: 5},
	{Type: "news", Num: 3},
	{Type: "images", Num: 2},
}

// Aggregator issues differently-typed search requests against a
// serper-compatible provider and merges the results into a bounded,
// deduplicated candidate source list.
type Aggregator struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithBaseURL overrides the search provider endpoint.
// Useful for tests and self-hosted proxies.
func WithBaseURL(url string) Option {
	return func(a *Aggregator) error {
		if url != "" {
			a.baseURL = url
		}
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 30 second timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Aggregator) error {
		if client != nil {
			a.client = client
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAggregator creates a new search aggregator.
func NewAggregator(apiKey string, opts ...Option) (*Aggregator, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	a := &Aggregator{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default().With("component", "websearch"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// searchRequest is the provider's request payload.
type searchRequest struct {
	Q    string `json:"q"`
	Num  int    `json:"num"`
	Type string `json:"type"`
}

// organicEntry is a single result in the provider's response.
type organicEntry struct {
	Link  string `json:"link"`
	Title string `json:"title"`
}

// searchResponse is the subset of the provider's response payload we consume.
type searchResponse struct {
	Organic []organicEntry `json:"organic"`
}

// Search issues one request per search kind and returns the merged results,
// deduplicated by exact URL (first occurrence wins) and truncated to the
// first MaxResults unique entries.
//
// A failing kind (network error, non-2xx status, malformed payload)
// contributes zero results and does not affect the other kinds. There is no
// retry. An empty return value means "no sources" and is not an error.
func (a *Aggregator) Search(ctx context.Context, query string) []core.SearchResult {
	merged := make([]core.SearchResult, 0, MaxResults)
	seen := make(map[string]bool)

	for _, kind := range searchKinds {
		entries, err := a.queryKind(ctx, query, kind)
		if err != nil {
			a.logger.Warn("search kind failed", "type", kind.Type, "err", err)
			continue
		}
		a.logger.Debug("search kind succeeded", "type", kind.Type, "results", len(entries))

		for _, entry := range entries {
			if entry.Link == "" || seen[entry.Link] {
				continue
			}
			seen[entry.Link] = true
			merged = append(merged, core.SearchResult{URL: entry.Link, Title: entry.Title})
		}
	}

	if len(merged) > MaxResults {
		merged = merged[:MaxResults]
	}

	a.logger.Info("search aggregation complete", "query", query, "sources", len(merged))
	return merged
}

// queryKind issues a single search request for one kind.
func (a *Aggregator) queryKind(ctx context.Context, query string, kind searchKind) ([]organicEntry, error) {
	payload, err := json.Marshal(searchRequest{Q: query, Num: kind.Num, Type: kind.Type})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned HTTP %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	return parsed.Organic, nil
}
