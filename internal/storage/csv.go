package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"olx-scraper/internal/domain"
)

// CSVWriter saves one run's listings to a CSV file. A rerun overwrites the
// previous file; nothing is written when the run produced no rows.
type CSVWriter struct {
	path   string
	logger *zap.Logger
}

func NewCSVWriter(path string, logger *zap.Logger) *CSVWriter {
	return &CSVWriter{path: path, logger: logger}
}

// Header is the fixed column order shared by the CSV and Postgres sinks.
func Header() []string {
	return []string{"title", "url", "price_guess", "location_guess", "snippet"}
}

func (w *CSVWriter) Write(rows []domain.Listing) error {
	if len(rows) == 0 {
		w.logger.Info("no rows to save")
		return nil
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("csv: create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write(Header())
	for _, r := range rows {
		writer.Write([]string{r.Title, r.URL, r.PriceGuess, r.LocationGuess, r.Snippet})
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv: write: %w", err)
	}

	w.logger.Info("saved rows", zap.Int("count", len(rows)), zap.String("path", w.path))
	return nil
}
