package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"olx-scraper/internal/domain"
)

// PostgresStore is an optional second sink: listings are inserted keyed by
// URL, so reruns only add listings not stored by a previous run.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS listings (
			id             BIGSERIAL PRIMARY KEY,
			title          TEXT,
			url            TEXT NOT NULL UNIQUE,
			price_guess    TEXT,
			location_guess TEXT,
			snippet        TEXT,
			scraped_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveListings batch-inserts the run's listings. Conflicting URLs are left
// untouched; the first stored version of a listing wins, mirroring the
// in-run dedup rule.
func (s *PostgresStore) SaveListings(ctx context.Context, rows []domain.Listing) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(
			`INSERT INTO listings (title, url, price_guess, location_guess, snippet)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (url) DO NOTHING`,
			r.Title, r.URL, r.PriceGuess, r.LocationGuess, r.Snippet)
	}

	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save listings: %w", err)
	}
	return nil
}
