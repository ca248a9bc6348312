package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"olx-scraper/internal/config"
	"olx-scraper/internal/domain"
)

func newTestServer() *Server {
	cfg := &config.Config{MetricsAddr: ":0"}
	return NewServer(cfg, nil, nil, zap.NewNop())
}

func TestHandleHealthCheck_OptionalStoresDisabled(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["postgres"] != "disabled" || body["redis"] != "disabled" {
		t.Errorf("unconfigured stores should report disabled, got %v", body)
	}
}

func TestHandleSummary(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("before any run, status = %d, want 404", rec.Code)
	}

	s.SetSummary(domain.RunSummary{
		PagesFetched: 2,
		RowsKept:     13,
		StopReason:   domain.StopNoNewRows,
		Duration:     3 * time.Second,
		FinishedAt:   time.Now(),
	})

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var summary domain.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if summary.RowsKept != 13 || summary.StopReason != domain.StopNoNewRows {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
