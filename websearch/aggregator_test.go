package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves canned serper-style responses keyed by search type.
type fakeProvider struct {
	responses map[string]searchResponse
	statuses  map[string]int
	rawBodies map[string]string
	requests  []searchRequest
	apiKeys   []string
}

func (f *fakeProvider) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.requests = append(f.requests, req)
		f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-KEY"))

		if status, ok := f.statuses[req.Type]; ok {
			w.WriteHeader(status)
			return
		}
		if raw, ok := f.rawBodies[req.Type]; ok {
			fmt.Fprint(w, raw)
			return
		}
		_ = json.NewEncoder(w).Encode(f.responses[req.Type])
	}
}

func entries(links ...string) []organicEntry {
	out := make([]organicEntry, len(links))
	for i, link := range links {
		out[i] = organicEntry{Link: link, Title: "title for " + link}
	}
	return out
}

func newTestAggregator(t *testing.T, provider *fakeProvider) (*Aggregator, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(provider.handler())
	t.Cleanup(srv.Close)

	agg, err := NewAggregator("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return agg, srv
}

func TestNewAggregator(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewAggregator("")
		assert.Equal(t, ErrAPIKeyRequired, err)
	})

	t.Run("defaults", func(t *testing.T) {
		agg, err := NewAggregator("key")
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, agg.baseURL)
	})

	t.Run("with base url override", func(t *testing.T) {
		agg, err := NewAggregator("key", WithBaseURL("http://localhost:9999"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", agg.baseURL)
	})
}

func TestSearch_KindOrderAndCounts(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: entries("https://a.example/1")},
			"news":   {Organic: entries("https://b.example/1")},
			"images": {Organic: entries("https://c.example/1")},
		},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "test query")

	require.Len(t, results, 3)
	assert.Equal(t, "https://a.example/1", results[0].URL)
	assert.Equal(t, "https://b.example/1", results[1].URL)
	assert.Equal(t, "https://c.example/1", results[2].URL)

	// Kinds are queried in fixed order with fixed counts
	require.Len(t, provider.requests, 3)
	assert.Equal(t, searchRequest{Q: "test query", Num: 5, Type: "search"}, provider.requests[0])
	assert.Equal(t, searchRequest{Q: "test query", Num: 3, Type: "news"}, provider.requests[1])
	assert.Equal(t, searchRequest{Q: "test query", Num: 2, Type: "images"}, provider.requests[2])

	for _, key := range provider.apiKeys {
		assert.Equal(t, "test-key", key)
	}
}

func TestSearch_CapsAtMaxResults(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: entries(
				"https://s.example/1", "https://s.example/2", "https://s.example/3",
				"https://s.example/4", "https://s.example/5")},
			"news": {Organic: entries(
				"https://n.example/1", "https://n.example/2", "https://n.example/3")},
			"images": {Organic: entries(
				"https://i.example/1", "https://i.example/2")},
		},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "busy query")

	require.Len(t, results, MaxResults)

	// All URLs pairwise distinct
	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.URL], "duplicate url %s", r.URL)
		seen[r.URL] = true
	}

	// Truncation keeps the first 7 in kind order
	assert.Equal(t, "https://s.example/1", results[0].URL)
	assert.Equal(t, "https://n.example/2", results[6].URL)
}

func TestSearch_DeduplicatesAcrossKinds(t *testing.T) {
	// The same url shows up in general and news results
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: entries("https://shared.example/story", "https://s.example/2")},
			"news":   {Organic: entries("https://shared.example/story", "https://n.example/2")},
			"images": {},
		},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "overlap")

	require.Len(t, results, 3)
	// First occurrence wins: the shared url sits at its general-search position
	assert.Equal(t, "https://shared.example/story", results[0].URL)
	assert.Equal(t, "https://s.example/2", results[1].URL)
	assert.Equal(t, "https://n.example/2", results[2].URL)
}

func TestSearch_FailedKindIsSwallowed(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: entries("https://s.example/1")},
			"images": {Organic: entries("https://i.example/1")},
		},
		statuses: map[string]int{"news": http.StatusInternalServerError},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "partial failure")

	require.Len(t, results, 2)
	assert.Equal(t, "https://s.example/1", results[0].URL)
	assert.Equal(t, "https://i.example/1", results[1].URL)
}

func TestSearch_MalformedPayloadIsSwallowed(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: entries("https://s.example/1")},
			"images": {},
		},
		rawBodies: map[string]string{"news": "{not json"},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "bad payload")

	require.Len(t, results, 1)
	assert.Equal(t, "https://s.example/1", results[0].URL)
}

func TestSearch_AllKindsFailIsEmptyNotError(t *testing.T) {
	provider := &fakeProvider{
		statuses: map[string]int{
			"search": http.StatusForbidden,
			"news":   http.StatusForbidden,
			"images": http.StatusForbidden,
		},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "all down")
	assert.Empty(t, results)
}

func TestSearch_SkipsEntriesWithoutLink(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]searchResponse{
			"search": {Organic: []organicEntry{
				{Link: "", Title: "no link"},
				{Link: "https://s.example/1", Title: "ok"},
			}},
			"news":   {},
			"images": {},
		},
	}
	agg, _ := newTestAggregator(t, provider)

	results := agg.Search(context.Background(), "missing links")

	require.Len(t, results, 1)
	assert.Equal(t, "https://s.example/1", results[0].URL)
}
