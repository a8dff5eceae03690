package web

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/computerscienceiscool/license-search/internal/infrastructure"
	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/computerscienceiscool/license-search/pkg/sandbox"
	"github.com/computerscienceiscool/license-search/pkg/search"
)

// MockSearchLog for testing
type MockSearchLog struct {
	mock.Mock
}

func (m *MockSearchLog) Initialize() error {
	return m.Called().Error(0)
}

func (m *MockSearchLog) Record(event infrastructure.SearchEvent) error {
	return m.Called(event).Error(0)
}

func (m *MockSearchLog) Recent(limit int) ([]infrastructure.SearchEvent, error) {
	args := m.Called(limit)
	return args.Get(0).([]infrastructure.SearchEvent), args.Error(1)
}

func (m *MockSearchLog) Close() error {
	return m.Called().Error(0)
}

// writeLicenses creates a license root with two texts and returns a handler
// over them.
func writeLicenses(t *testing.T) (string, *search.Handler) {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"LICENSE-2.0.txt": "Apache License\nVersion 2.0, January 2004",
		"gpl-3.0.txt":     "GNU GENERAL PUBLIC LICENSE\nVersion 3, 29 June 2007\n<https://fsf.org/>",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	}

	catalog, err := license.NewCatalog([]license.Entry{
		{Name: "Apache License, Version 2.0", File: "LICENSE-2.0.txt"},
		{Name: "GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007", File: "gpl-3.0.txt"},
	})
	require.NoError(t, err)

	return root, search.NewHandler(catalog, sandbox.NewHostReader(root, 0))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex_NoQueryListsLicenses(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler})

	for _, target := range []string{"/", "/?q="} {
		rec := get(t, srv.Routes(), target)

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Apache License search</title>")
		assert.Contains(t, body, "<h1>Open Source License Search</h1>")
		assert.Contains(t, body, "<li>Apache License, Version 2.0</li><li>GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007</li>")
		assert.Contains(t, body, `<input name="q" type="text" size="30" maxlength="30">`)
		assert.Contains(t, body, `<input type="submit" value=" GO! ">`)
	}
}

func TestIndex_FoundHighlightsFirstMatch(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler})

	rec := get(t, srv.Routes(), "/?q="+url.QueryEscape("Version 2.0"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Apache License, Version 2.0</h1>")
	assert.Contains(t, body, "<pre>Apache License\n<span class=\"h\">Version 2.0</span>, January 2004</pre>")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestIndex_FoundEscapesHTML(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler})

	rec := get(t, srv.Routes(), "/?q="+url.QueryEscape("<https://fsf.org/>"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007</h1>")
	assert.Contains(t, body, `<span class="h">&lt;https://fsf.org/&gt;</span>`)
	assert.NotContains(t, body, "<https://fsf.org/>")
}

func TestIndex_NotFound(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler})

	for _, q := range []string{"zzz", "<script>alert(1)</script>", "Version .*"} {
		rec := get(t, srv.Routes(), "/?q="+url.QueryEscape(q))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Error: could not find anything.</h1>")
		assert.NotContains(t, rec.Body.String(), "<script>")
	}
}

func TestIndex_ReadErrorIsGeneric500(t *testing.T) {
	root, handler := writeLicenses(t)
	require.NoError(t, os.Remove(filepath.Join(root, "LICENSE-2.0.txt")))

	core, logs := observer.New(zapcore.InfoLevel)
	srv := NewServer(Options{Handler: handler, Logger: zap.New(core)})

	rec := get(t, srv.Routes(), "/?q=GNU")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Error: the license texts are currently unavailable.</h1>")
	assert.NotContains(t, body, root)
	assert.NotContains(t, body, "FILE_NOT_FOUND")

	failed := logs.FilterMessage("search failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "failed", failed[0].ContextMap()["outcome"])
	assert.Contains(t, failed[0].ContextMap()["error"], "FILE_NOT_FOUND")
}

func TestIndex_MethodAndPath(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("q=GNU"))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))

	rec = get(t, srv.Routes(), "/licenses/gpl-3.0.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	_, handler := writeLicenses(t)
	rec := get(t, NewServer(Options{Handler: handler}).Routes(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex_RecordsSearches(t *testing.T) {
	_, handler := writeLicenses(t)

	auditPath := filepath.Join(t.TempDir(), "audit.log")
	audit, err := sandbox.NewAuditLogger(auditPath)
	require.NoError(t, err)
	defer audit.Close()

	searchLog := &MockSearchLog{}
	searchLog.On("Record", mock.MatchedBy(func(e infrastructure.SearchEvent) bool {
		return e.Query == "Version 3" && e.Outcome == "found" &&
			e.Label == "GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007" && e.Scanned == 2
	})).Return(nil).Once()
	searchLog.On("Record", mock.MatchedBy(func(e infrastructure.SearchEvent) bool {
		return e.Query == "" && e.Outcome == "no_query" && e.Scanned == 0
	})).Return(errors.New("disk full")).Once()

	core, logs := observer.New(zapcore.InfoLevel)
	srv := NewServer(Options{Handler: handler, Logger: zap.New(core), Audit: audit, SearchLog: searchLog})

	rec := get(t, srv.Routes(), "/?q="+url.QueryEscape("Version 3"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = get(t, srv.Routes(), "/")
	require.Equal(t, http.StatusOK, rec.Code, "a failing search log must not fail the request")

	searchLog.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("failed to record search").Len())
	assert.Equal(t, 2, logs.FilterMessage("search").Len())

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "|search|Version 3|found|GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007")
	assert.Contains(t, lines[1], "|search||no_query|")
}

func TestServe_GracefulShutdown(t *testing.T) {
	_, handler := writeLicenses(t)
	srv := NewServer(Options{Handler: handler, ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/?q=Apache")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h1>Apache License, Version 2.0</h1>")
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
