package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/go-playground/assert/v2"
)

func testPayload(report string) *model.ReportPayload {
	price := 100.0
	return &model.ReportPayload{
		UpdatedAtUTC: time.Date(2026, 2, 26, 6, 0, 0, 0, time.UTC),
		Title:        "財經AI快報 2026-02-26",
		Report:       report,
		News: []model.NewsItem{
			{Title: "t", Link: "https://x/1", Summary: "s", PublishedAt: time.Date(2026, 2, 26, 5, 0, 0, 0, time.UTC)},
		},
		Market: map[string]model.QuoteRecord{
			"NVDA": {OK: true, Ticker: "NVDA", Source: "finnhub", Price: &price},
		},
	}
}

func TestWriteAndReadLatest(t *testing.T) {
	s := New(t.TempDir())

	assert.Equal(t, nil, s.WriteLatest(testPayload("report one")))

	got, err := s.Latest()
	assert.Equal(t, nil, err)
	assert.Equal(t, "report one", got.Report)
	assert.Equal(t, 1, len(got.News))
	assert.Equal(t, true, got.Market["NVDA"].OK)

	// A later run replaces the latest slot.
	assert.Equal(t, nil, s.WriteLatest(testPayload("report two")))
	got, err = s.Latest()
	assert.Equal(t, nil, err)
	assert.Equal(t, "report two", got.Report)
}

func TestLatestMissing(t *testing.T) {
	s := New(t.TempDir())

	got, err := s.Latest()
	assert.Equal(t, nil, err)
	if got != nil {
		t.Fatalf("expected nil payload, got %+v", got)
	}
}

func TestLatestCorrupt(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, nil, os.WriteFile(filepath.Join(dir, "latest_report.json"), []byte("{broken"), 0o644))

	s := New(dir)
	_, err := s.Latest()
	assert.NotEqual(t, nil, err)
}

func TestWriteHistoryAndList(t *testing.T) {
	s := New(t.TempDir())
	now := time.Date(2026, 2, 26, 6, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.Equal(t, nil, s.WriteHistory(testPayload("today"), now))
	assert.Equal(t, nil, s.WriteHistory(testPayload("yesterday"), now.Add(-24*time.Hour)))

	dates, err := s.HistoryDates()
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"2026-02-26", "2026-02-25"}, dates)

	got, err := s.History("2026-02-25")
	assert.Equal(t, nil, err)
	assert.Equal(t, "yesterday", got.Report)
}

func TestHistoryNeverOverwritesPastDate(t *testing.T) {
	s := New(t.TempDir())
	day := time.Date(2026, 2, 25, 6, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return day }
	assert.Equal(t, nil, s.WriteHistory(testPayload("original"), day))

	// The next day the dated slot is frozen.
	s.now = func() time.Time { return day.Add(24 * time.Hour) }
	assert.Equal(t, nil, s.WriteHistory(testPayload("rewritten"), day))

	got, err := s.History("2026-02-25")
	assert.Equal(t, nil, err)
	assert.Equal(t, "original", got.Report)
}

func TestHistorySameDayRewrite(t *testing.T) {
	s := New(t.TempDir())
	day := time.Date(2026, 2, 26, 6, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	assert.Equal(t, nil, s.WriteHistory(testPayload("first"), day))
	assert.Equal(t, nil, s.WriteHistory(testPayload("second"), day))

	got, err := s.History("2026-02-26")
	assert.Equal(t, nil, err)
	assert.Equal(t, "second", got.Report)
}

func TestHistoryMissingDate(t *testing.T) {
	s := New(t.TempDir())

	got, err := s.History("2026-01-01")
	assert.Equal(t, nil, err)
	if got != nil {
		t.Fatalf("expected nil payload, got %+v", got)
	}
}

func TestHistoryInvalidDate(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.History("not-a-date")
	assert.NotEqual(t, nil, err)
}

func TestHistoryDatesEmpty(t *testing.T) {
	s := New(t.TempDir())

	dates, err := s.HistoryDates()
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(dates))
}
