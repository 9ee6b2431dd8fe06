package model

import "time"

// NewsItem is a single deduplicated feed entry. Link is the identity of the
// item: once a link has been published it is never emitted again.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"dt_utc"`
}

// QuoteRecord is the outcome of resolving one instrument. When OK is false
// every numeric field is nil; when OK is true Price is always set and
// Change/Pct are derived only if PrevClose is known and non-zero.
type QuoteRecord struct {
	OK        bool      `json:"ok"`
	Ticker    string    `json:"ticker,omitempty"`
	Source    string    `json:"source,omitempty"`
	Price     *float64  `json:"price"`
	PrevClose *float64  `json:"prev_close"`
	Change    *float64  `json:"change"`
	Pct       *float64  `json:"pct"`
	AsOf      time.Time `json:"asof_utc"`
}

// ReportPayload is the full output of one agent run. It is written once and
// never mutated; a new run produces a new payload.
type ReportPayload struct {
	UpdatedAtUTC time.Time              `json:"updated_at_utc"`
	Title        string                 `json:"title"`
	Report       string                 `json:"report"`
	News         []NewsItem             `json:"news"`
	Market       map[string]QuoteRecord `json:"market"`
}
