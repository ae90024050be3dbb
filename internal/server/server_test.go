package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nephscope/internal/config"
	"nephscope/internal/report"
	"nephscope/internal/store"
	"nephscope/internal/trends"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(config.Output{
		Directory:    t.TempDir(),
		ArticlesFile: "articles.json",
		TrendsFile:   "trends.json",
		SummaryFile:  "weekly_summary.json",
	})
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	return New(":0", st), st
}

func TestServeDocumentNotGenerated(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	for _, path := range []string{"/api/articles", "/api/trends", "/api/summary"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "not generated yet") {
			t.Errorf("%s: unexpected body %q", path, rec.Body.String())
		}
	}
}

func TestServeTrendsDocument(t *testing.T) {
	srv, st := newTestServer(t)
	if _, err := st.SaveTrends(&trends.Snapshot{TotalCount: 5}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trends", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("unexpected content type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "\"total_count\": 5") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHomeRendersReportPage(t *testing.T) {
	srv, st := newTestServer(t)
	doc := &report.Document{
		ID:           "doc-1",
		GeneratedAt:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		ReportPeriod: "過去 7 天",
	}
	if _, err := st.SaveSummary(doc); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "腎臟學研究週報") {
		t.Error("expected report title in rendered page")
	}
}

func TestHomeWithoutSummary(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
