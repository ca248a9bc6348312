package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"olx-scraper/internal/config"
	"olx-scraper/internal/domain"
	"olx-scraper/internal/storage"
)

// Server is the optional ops listener serving metrics, health and the last
// run summary while a scrape is in progress. It is only started when a
// metrics address is configured.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	pgStore    *storage.PostgresStore
	seenCache  *storage.SeenCache
	logger     *zap.Logger

	mu      sync.RWMutex
	summary *domain.RunSummary
}

func NewServer(cfg *config.Config, ps *storage.PostgresStore, sc *storage.SeenCache, l *zap.Logger) *Server {
	s := &Server{
		config:    cfg,
		pgStore:   ps,
		seenCache: sc,
		logger:    l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.MetricsAddr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// SetSummary publishes the finished run's summary to the summary endpoint.
func (s *Server) SetSummary(summary domain.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
}

func (s *Server) lastSummary() *domain.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}
