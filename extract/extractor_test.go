package extract

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTransport serves a fixed response and records every request, so tests
// can assert on call counts and request headers without a network.
type stubTransport struct {
	status   int
	body     string
	requests []*http.Request
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newTestExtractor(t *testing.T, transport *stubTransport) *Extractor {
	t.Helper()
	e, err := NewExtractor(WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return e
}

func longText(n int) string {
	return strings.Repeat("lorem ipsum text ", n/17+1)[:n]
}

func TestFetch_DenylistedDomainSkipsNetwork(t *testing.T) {
	transport := &stubTransport{body: "<html><body><p>should never be fetched</p></body></html>"}
	e := newTestExtractor(t, transport)

	for _, url := range []string{
		"https://www.youtube.com/watch?v=abc",
		"https://twitter.com/someone/status/1",
		"https://facebook.com/page",
		"https://instagram.com/pic",
		"https://pinterest.com/pin",
	} {
		content := e.Fetch(context.Background(), url)
		assert.Empty(t, content, "url %s", url)
	}

	assert.Zero(t, len(transport.requests), "denylisted urls must not trigger network calls")
}

func TestFetch_BrowserRequestSignature(t *testing.T) {
	transport := &stubTransport{body: "<html><body></body></html>"}
	e := newTestExtractor(t, transport)

	e.Fetch(context.Background(), "https://news.example/story")

	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Contains(t, req.Header.Get("User-Agent"), "Mozilla/5.0")
	assert.Contains(t, req.Header.Get("Accept"), "text/html")
	assert.Equal(t, "en-US,en;q=0.5", req.Header.Get("Accept-Language"))
}

func TestFetch_NonOKStatusYieldsEmpty(t *testing.T) {
	transport := &stubTransport{
		status: http.StatusForbidden,
		body:   "<html><body><article>" + longText(500) + "</article></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://blocked.example/article")
	assert.Empty(t, content)
}

func TestFetch_ContainerStrategyWins(t *testing.T) {
	article := longText(400)
	transport := &stubTransport{
		body: "<html><body><nav>menu menu menu</nav><article>" + article + "</article></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/post")
	require.NotEmpty(t, content)
	assert.Contains(t, content, article[:50])
	assert.NotContains(t, content, "menu menu menu")
}

func TestFetch_ParagraphStrategyWhenNoContainers(t *testing.T) {
	// A single 300-char paragraph and no article/main containers: strategy 1
	// produces nothing, strategy 2 must pick up the paragraph.
	para := longText(300)
	transport := &stubTransport{
		body: "<html><body><div><p>" + para + "</p><p>short caption</p></div></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/plain")
	require.NotEmpty(t, content)
	assert.Contains(t, content, para[:50])
	// Blocks at or below the length floor are filtered out
	assert.NotContains(t, content, "short caption")
}

func TestFetch_DocumentFallbackStrategy(t *testing.T) {
	// No containers, no long paragraphs, but plenty of loose text: only the
	// whole-document strategy can clear the threshold.
	loose := longText(400)
	transport := &stubTransport{
		body: "<html><body><div><span>" + loose + "</span></div></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/loose")
	require.NotEmpty(t, content)
	assert.Contains(t, content, loose[:50])
}

func TestFetch_AllStrategiesBelowThresholdYieldsEmpty(t *testing.T) {
	transport := &stubTransport{
		body: "<html><body><article>tiny</article><p>also quite small here</p></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/sparse")
	assert.Empty(t, content)
}

func TestFetch_StripsBoilerplateElements(t *testing.T) {
	article := longText(300)
	transport := &stubTransport{
		body: `<html><body>
			<script>var tracking = "SCRIPTMARKER";</script>
			<style>.x { color: red; } /* STYLEMARKER */</style>
			<header>HEADERMARKER site banner</header>
			<footer>FOOTERMARKER copyright</footer>
			<form>FORMMARKER subscribe</form>
			<article>` + article + `</article>
		</body></html>`,
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/boilerplate")
	require.NotEmpty(t, content)
	for _, marker := range []string{"SCRIPTMARKER", "STYLEMARKER", "HEADERMARKER", "FOOTERMARKER", "FORMMARKER"} {
		assert.NotContains(t, content, marker)
	}
}

func TestFetch_TruncatesToMaxContentLength(t *testing.T) {
	transport := &stubTransport{
		body: "<html><body><article>" + longText(9000) + "</article></body></html>",
	}
	e := newTestExtractor(t, transport)

	content := e.Fetch(context.Background(), "https://site.example/long")
	require.NotEmpty(t, content)
	assert.LessOrEqual(t, len(content), MaxContentLength)
}

func TestTruncate_RuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10) // 2 bytes per rune
	got := truncate(s, 5)
	assert.True(t, len(got) <= 5)
	for _, r := range got {
		assert.NotEqual(t, '�', r)
	}
}

func TestFetch_UnparseableBodyYieldsEmpty(t *testing.T) {
	// goquery tolerates most malformed HTML; a transport error is the
	// reliable way to exercise the degrade-to-empty path.
	e, err := NewExtractor(WithHTTPClient(&http.Client{Transport: failingTransport{}}))
	require.NoError(t, err)

	content := e.Fetch(context.Background(), "https://unreachable.example/page")
	assert.Empty(t, content)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, io.ErrUnexpectedEOF
}
