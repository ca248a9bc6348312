package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"olx-scraper/internal/config"
)

// Fetcher issues GET requests through one shared client so TCP connections
// are reused across pages of the same run.
type Fetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout()},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch retrieves one page body. A non-200 status or any transport fault is
// logged here and returned as an error; the caller stops pagination rather
// than retrying.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("request failed", zap.String("url", pageURL), zap.Error(err))
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("unexpected status", zap.Int("status", resp.StatusCode), zap.String("url", pageURL))
		return "", fmt.Errorf("fetch: HTTP %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("failed to read body", zap.String("url", pageURL), zap.Error(err))
		return "", fmt.Errorf("fetch: read body: %w", err)
	}
	return string(body), nil
}
