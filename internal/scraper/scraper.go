package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"olx-scraper/internal/config"
	"olx-scraper/internal/domain"
	"olx-scraper/internal/monitoring"
	"olx-scraper/internal/storage"
)

// Scraper drives the page loop: fetch, extract, filter, delay. Pages are
// processed strictly one at a time in increasing order.
type Scraper struct {
	cfg       *config.Config
	fetcher   *Fetcher
	seenCache *storage.SeenCache // nil unless Redis is configured
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

func New(cfg *config.Config, sc *storage.SeenCache, m *monitoring.Metrics, l *zap.Logger) *Scraper {
	return &Scraper{
		cfg:       cfg,
		fetcher:   NewFetcher(cfg, l),
		seenCache: sc,
		metrics:   m,
		logger:    l,
	}
}

// pageURL maps a 1-based page number to its search URL. Page 1 is the bare
// search URL; later pages append a page query parameter.
func (s *Scraper) pageURL(page int) string {
	if page <= 1 {
		return s.cfg.BaseURL
	}
	return fmt.Sprintf("%s?page=%d", s.cfg.BaseURL, page)
}

// Run walks pages 1..MaxPages and accumulates listings. The loop ends on a
// fetch failure, on a page that yields no unseen listings, on cancellation,
// or when the page budget is exhausted; whichever way it ends, everything
// gathered so far is returned.
func (s *Scraper) Run(ctx context.Context) ([]domain.Listing, domain.RunSummary) {
	start := time.Now()
	summary := domain.RunSummary{StopReason: domain.StopPageBudget}

	var all []domain.Listing
	seenURLs := make(map[string]struct{})

loop:
	for page := 1; page <= s.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			summary.StopReason = domain.StopCancelled
			break
		}

		target := s.pageURL(page)
		s.logger.Info("fetching page", zap.Int("page", page), zap.String("url", target))

		body, err := s.fetcher.Fetch(ctx, target)
		if err != nil {
			s.logger.Warn("no HTML fetched, stopping", zap.Int("page", page))
			s.metrics.IncErrorsTotal("fetch_failed")
			summary.StopReason = domain.StopFetchFailed
			break
		}
		summary.PagesFetched++
		s.metrics.IncPagesFetched()

		rows := ExtractListings(body, s.cfg.BaseURL)
		s.metrics.AddListingsExtracted(len(rows))

		newRows := s.filterNew(ctx, rows, seenURLs)
		if len(newRows) == 0 {
			s.logger.Info("no new rows found, stopping", zap.Int("page", page))
			summary.StopReason = domain.StopNoNewRows
			break
		}

		all = append(all, newRows...)
		for _, r := range newRows {
			seenURLs[r.URL] = struct{}{}
		}
		s.metrics.AddListingsKept(len(newRows))

		// Fixed pause between pages to avoid hammering the target.
		select {
		case <-time.After(s.cfg.PageDelay()):
		case <-ctx.Done():
			summary.StopReason = domain.StopCancelled
			break loop
		}
	}

	if s.seenCache != nil && len(all) > 0 {
		if err := s.seenCache.MarkSeen(ctx, all); err != nil {
			s.logger.Error("failed to update seen cache", zap.Error(err))
			s.metrics.IncErrorsTotal("seen_cache_write_failed")
		}
	}

	summary.RowsKept = len(all)
	summary.Duration = time.Since(start)
	summary.FinishedAt = time.Now()
	return all, summary
}

// filterNew drops rows whose URL appeared on an earlier page of this run
// and, when the seen cache is enabled, rows seen by a previous run.
func (s *Scraper) filterNew(ctx context.Context, rows []domain.Listing, seenURLs map[string]struct{}) []domain.Listing {
	newRows := make([]domain.Listing, 0, len(rows))
	for _, r := range rows {
		if _, ok := seenURLs[r.URL]; ok {
			continue
		}
		if s.seenCache != nil {
			recent, err := s.seenCache.IsRecentlySeen(ctx, r.URL)
			if err != nil {
				s.logger.Error("seen cache lookup failed", zap.String("url", r.URL), zap.Error(err))
				s.metrics.IncErrorsTotal("seen_cache_read_failed")
			} else if recent {
				s.logger.Info("skipping recently seen listing", zap.String("url", r.URL))
				continue
			}
		}
		newRows = append(newRows, r)
	}
	return newRows
}
