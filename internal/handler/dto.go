package handler

import (
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
)

type NewsItemResponse struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
	DtUTC   string `json:"dt_utc"`
}

type QuoteResponse struct {
	OK        bool     `json:"ok"`
	Ticker    string   `json:"ticker,omitempty"`
	Source    string   `json:"source,omitempty"`
	Price     *float64 `json:"price"`
	PrevClose *float64 `json:"prev_close"`
	Change    *float64 `json:"change"`
	Pct       *float64 `json:"pct"`
	AsOfUTC   string   `json:"asof_utc"`
}

type ReportResponse struct {
	UpdatedAtUTC string                   `json:"updated_at_utc"`
	Title        string                   `json:"title"`
	Report       string                   `json:"report"`
	News         []NewsItemResponse       `json:"news"`
	Market       map[string]QuoteResponse `json:"market"`
}

type HistoryResponse struct {
	Dates []string `json:"dates"`
}

func toReportResponse(p *model.ReportPayload) ReportResponse {
	news := make([]NewsItemResponse, 0, len(p.News))
	for _, n := range p.News {
		news = append(news, NewsItemResponse{
			Title:   n.Title,
			Link:    n.Link,
			Summary: n.Summary,
			DtUTC:   n.PublishedAt.UTC().Format(time.RFC3339),
		})
	}

	market := make(map[string]QuoteResponse, len(p.Market))
	for name, q := range p.Market {
		market[name] = toQuoteResponse(q)
	}

	return ReportResponse{
		UpdatedAtUTC: p.UpdatedAtUTC.UTC().Format(time.RFC3339),
		Title:        p.Title,
		Report:       p.Report,
		News:         news,
		Market:       market,
	}
}

func toQuoteResponse(q model.QuoteRecord) QuoteResponse {
	return QuoteResponse{
		OK:        q.OK,
		Ticker:    q.Ticker,
		Source:    q.Source,
		Price:     q.Price,
		PrevClose: q.PrevClose,
		Change:    q.Change,
		Pct:       q.Pct,
		AsOfUTC:   q.AsOf.UTC().Format(time.RFC3339),
	}
}
