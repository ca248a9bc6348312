package domain

import "time"

// Listing is one advertisement entry extracted from a search-result page.
// URL is always present and absolute; it is the deduplication key. Every
// other field is a best-effort guess taken from text near the listing anchor
// and may be empty.
type Listing struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	PriceGuess    string `json:"price_guess"`
	LocationGuess string `json:"location_guess"`
	Snippet       string `json:"snippet"`
}

// Terminal states of the page loop.
const (
	StopPageBudget  = "page_budget_exhausted"
	StopFetchFailed = "fetch_failed"
	StopNoNewRows   = "no_new_rows"
	StopCancelled   = "cancelled"
)

// RunSummary describes the outcome of one scrape run.
type RunSummary struct {
	PagesFetched int           `json:"pages_fetched"`
	RowsKept     int           `json:"rows_kept"`
	StopReason   string        `json:"stop_reason"`
	Duration     time.Duration `json:"duration_ns"`
	FinishedAt   time.Time     `json:"finished_at"`
}
