package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksk-aiko/ResumeWebsite/internal/fetch"
	"github.com/ksk-aiko/ResumeWebsite/internal/portfolio"
	"github.com/ksk-aiko/ResumeWebsite/internal/site"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "site"))
	require.NoError(t, err)
	return abs
}

func newTestServer(t *testing.T, publicDir string, allowAll bool) *Server {
	t.Helper()
	renderer := site.NewRenderer(fetch.NewDirFetcher(publicDir), site.Options{SiteTitle: "test"}, nil)
	return New(Config{Port: 0, PublicDir: publicDir, AllowAll: allowAll}, renderer, nil)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), true)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"), "expected CORS Allow-Origin header")
}

func TestPagesHighlightNav(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	tests := []struct {
		target string
		active string
	}{
		{"/", "home"},
		{"/index.html", "home"},
		{"/resume/", "resume"},
		{"/resume", "resume"},
		{"/portfolio/", "portfolio"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, srv, tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

			body := w.Body.String()
			assert.NotContains(t, body, "data-partial")
			assert.Contains(t, body, `class="nav-link active" data-nav="`+tt.active+`"`)
			assert.Equal(t, 1, strings.Count(body, "nav-link active"))
		})
	}
}

func TestPortfolioPageRendersCards(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/portfolio/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="portfolio-card"`))
}

func TestMarkdownPage(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/about")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>About | test</title>")
	assert.Contains(t, w.Body.String(), `class="site-header"`)
}

func TestStaticFiles(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/assets/portfolio.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Weather Bot")

	w = get(t, srv, "/partials/footer.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site-footer")
}

func TestUnpublishedFilesNotServed(t *testing.T) {
	dir := t.TempDir()
	for rel, body := range map[string]string{
		"index.html":         "<html><body>home</body></html>",
		".env":               "SECRET=1",
		".git/config":        "[core]",
		"assets/.draft.json": "[]",
		"docs/readme.txt":    "hello",
		"node_modules/a.js":  "x",
		".hidden/page.html":  "<p>hidden</p>",
	} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	srv := newTestServer(t, dir, false)

	for _, target := range []string{"/.env", "/.git/config", "/assets/.draft.json", "/node_modules/a.js", "/.hidden/page.html", "/assets/", "/docs"} {
		w := get(t, srv, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}

	w := get(t, srv, "/docs/readme.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
}

func TestUnknownPage(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIPortfolio(t *testing.T) {
	srv := newTestServer(t, testdataDir(t), false)

	w := get(t, srv, "/api/portfolio")
	require.Equal(t, http.StatusOK, w.Code)

	var items []portfolio.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "Todo CLI", items[0].Title)
	assert.Equal(t, "Weather Bot", items[2].Title)
}

func TestAPIPortfolioUnavailable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>hi</p>"), 0o644))
	srv := newTestServer(t, dir, false)

	w := get(t, srv, "/api/portfolio")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestResolvePage(t *testing.T) {
	dir := testdataDir(t)
	tests := []struct {
		urlPath string
		want    string
		ok      bool
	}{
		{"/", "index.html", true},
		{"/index.html", "index.html", true},
		{"/resume/", "resume/index.html", true},
		{"/resume", "resume/index.html", true},
		{"/about", "about.md", true},
		{"/about.html", "about.md", true},
		{"/assets/style.css", "", false},
		{"/missing/", "", false},
		{"/../../etc/passwd", "", false},
	}
	for _, tt := range tests {
		got, ok := resolvePage(dir, tt.urlPath)
		assert.Equal(t, tt.ok, ok, "resolvePage(%q)", tt.urlPath)
		if tt.ok {
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tt.want)), got, "resolvePage(%q)", tt.urlPath)
		}
	}
}
