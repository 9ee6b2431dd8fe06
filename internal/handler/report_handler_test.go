package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeStore struct {
	latest  *model.ReportPayload
	history map[string]*model.ReportPayload
	dates   []string
	err     error
}

func (f *fakeStore) Latest() (*model.ReportPayload, error) {
	return f.latest, f.err
}

func (f *fakeStore) History(date string) (*model.ReportPayload, error) {
	return f.history[date], f.err
}

func (f *fakeStore) HistoryDates() ([]string, error) {
	return f.dates, f.err
}

type fakeMarket struct {
	records map[string]model.QuoteRecord
}

func (f *fakeMarket) Snapshot(ctx context.Context) map[string]model.QuoteRecord {
	return f.records
}

func newTestRouter(store ReportStore, market MarketResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportHandler(store)
	r.GET("/report/latest", h.GetLatest)
	r.GET("/report/history", h.GetHistoryDates)
	r.GET("/report/history/:date", h.GetHistoryByDate)
	r.GET("/health", h.GetHealth)
	if market != nil {
		r.GET("/market", NewMarketHandler(market).GetMarket)
	}
	return r
}

func testPayload() *model.ReportPayload {
	price := 905.5
	prev := 880.0
	change := 25.5
	pct := change / prev * 100
	return &model.ReportPayload{
		UpdatedAtUTC: time.Date(2026, 2, 26, 6, 0, 0, 0, time.UTC),
		Title:        "財經AI快報 2026-02-26",
		Report:       "📊重大事件...",
		News: []model.NewsItem{
			{Title: "headline", Link: "https://x/1", Summary: "summary", PublishedAt: time.Date(2026, 2, 26, 5, 30, 0, 0, time.UTC)},
		},
		Market: map[string]model.QuoteRecord{
			"NVIDIA（NVDA）": {OK: true, Ticker: "NVDA", Source: "finnhub", Price: &price, PrevClose: &prev, Change: &change, Pct: &pct},
			"富台指期（FTX）":    {OK: false},
		},
	}
}

func TestGetLatest_ReturnsReport(t *testing.T) {
	store := &fakeStore{latest: testPayload()}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "2026-02-26T06:00:00Z", res.UpdatedAtUTC)
	assert.Equal(t, 1, len(res.News))
	assert.Equal(t, "headline", res.News[0].Title)
	assert.Equal(t, "2026-02-26T05:30:00Z", res.News[0].DtUTC)
	assert.Equal(t, true, res.Market["NVIDIA（NVDA）"].OK)
	assert.Equal(t, 905.5, *res.Market["NVIDIA（NVDA）"].Price)
	assert.Equal(t, false, res.Market["富台指期（FTX）"].OK)
}

func TestGetLatest_NoReportYet(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLatest_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("disk error")}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHistoryDates(t *testing.T) {
	store := &fakeStore{dates: []string{"2026-02-26", "2026-02-25"}}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res HistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"2026-02-26", "2026-02-25"}, res.Dates)
}

func TestGetHistoryByDate_Found(t *testing.T) {
	store := &fakeStore{history: map[string]*model.ReportPayload{"2026-02-25": testPayload()}}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/history/2026-02-25", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHistoryByDate_NotFound(t *testing.T) {
	store := &fakeStore{history: map[string]*model.ReportPayload{}}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/history/2026-01-01", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHistoryByDate_InvalidDate(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/report/history/yesterday", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMarket(t *testing.T) {
	price := 42.0
	market := &fakeMarket{records: map[string]model.QuoteRecord{
		"TSM": {OK: true, Ticker: "TSM", Source: "yahoo", Price: &price},
		"FTX": {OK: false},
	}}
	r := newTestRouter(&fakeStore{}, market)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/market", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]QuoteResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, true, res["TSM"].OK)
	assert.Equal(t, 42.0, *res["TSM"].Price)
	assert.Equal(t, false, res["FTX"].OK)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
