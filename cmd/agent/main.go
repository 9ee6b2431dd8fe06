package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/config"
	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/flyer19820218/finance-daily-news/internal/store"
	"github.com/flyer19820218/finance-daily-news/pkg/llm"
	"github.com/flyer19820218/finance-daily-news/pkg/news"
	"github.com/flyer19820218/finance-daily-news/pkg/quote"
	"github.com/flyer19820218/finance-daily-news/pkg/telegram"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()
	now := time.Now().UTC()

	// 1) News: fetch, dedupe against the persisted link cache.
	cache := news.NewLinkCache(cfg.CachePath(), cfg.CacheLimit)
	if err := cache.Load(); err != nil {
		slog.Error("error loading link cache", "error", err)
	}

	aggregator := news.NewAggregator(cache)
	items, err := aggregator.Fetch(ctx, cfg.Feeds, cfg.NewsWindow, cfg.NewsLimit)
	if err != nil {
		slog.Error("error persisting link cache", "error", err)
	}
	slog.Info("news fetched", "count", len(items), "cache_size", cache.Len())

	// 2) Report: degrade to a placeholder on any analyst failure.
	report := analyze(items, cfg)

	// 3) Quotes: one record per instrument, ok=false when all sources fail.
	resolver := quote.NewResolver(cfg.QuoteTTL)
	market := resolver.ResolveAll(ctx, cfg.Instruments())

	payload := &model.ReportPayload{
		UpdatedAtUTC: now,
		Title:        fmt.Sprintf("財經AI快報 %s", now.Format("2006-01-02")),
		Report:       report,
		News:         items,
		Market:       market,
	}

	// 4) Publish. Each step is isolated so one failure cannot skip the rest.
	st := store.New(cfg.DataDir)
	if err := st.WriteLatest(payload); err != nil {
		slog.Error("error writing latest report", "error", err)
	}
	if err := st.WriteHistory(payload, now); err != nil {
		slog.Error("error writing history report", "error", err)
	}

	notifier := telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
	if !notifier.Enabled() {
		slog.Info("telegram not configured, skipping push")
	} else if err := notifier.Send(report); err != nil {
		slog.Error("error sending telegram push", "error", err)
	}

	slog.Info("run complete", "news", len(items), "instruments", len(market))
}

func analyze(items []model.NewsItem, cfg *config.Config) string {
	if len(items) == 0 {
		return llm.PlaceholderReport
	}

	var analyst llm.Analyst
	if cfg.AnthropicAPIKey != "" {
		analyst = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	} else if cfg.OpenAIAPIKey != "" {
		analyst = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if analyst == nil {
		slog.Warn("no analyst API key configured, publishing placeholder report")
		return llm.PlaceholderReport
	}

	inputs := make([]llm.ReportInput, len(items))
	for i, n := range items {
		inputs[i] = llm.ReportInput{Title: n.Title, Summary: n.Summary}
	}

	report, err := analyst.Report(inputs)
	if err != nil {
		slog.Error("error generating report", "error", err)
		return llm.PlaceholderReport
	}
	return report
}
