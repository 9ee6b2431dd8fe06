package news

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/mmcdole/gofeed"
	"github.com/mrz1836/go-sanitize"
)

const summaryMaxRunes = 200

// Aggregator fetches syndication feeds and returns the unseen items inside
// the recency window, newest first. It owns the link cache: every accepted
// item's link is recorded immediately, so a link appearing in two configured
// feeds within one run is only emitted for the first feed.
type Aggregator struct {
	parser *gofeed.Parser
	cache  *LinkCache
	now    func() time.Time
}

func NewAggregator(cache *LinkCache) *Aggregator {
	return &Aggregator{
		parser: gofeed.NewParser(),
		cache:  cache,
		now:    time.Now,
	}
}

// Fetch processes every source in order and returns at most limit items.
// An unreachable or malformed feed is skipped; an entry without a publish
// timestamp or without a link is skipped. The cache is persisted before
// returning, so a rerun over the same feeds yields no repeats. The returned
// error is the persist error only; fetch failures are logged per source.
func (a *Aggregator) Fetch(ctx context.Context, sources []string, window time.Duration, limit int) ([]model.NewsItem, error) {
	cutoff := a.now().UTC().Add(-window)

	var items []model.NewsItem
	for _, src := range sources {
		feed, err := a.parser.ParseURLWithContext(src, ctx)
		if err != nil {
			slog.Warn("skipping feed", "url", src, "error", err)
			continue
		}

		accepted := 0
		for _, entry := range feed.Items {
			if entry.PublishedParsed == nil {
				continue
			}
			published := entry.PublishedParsed.UTC()
			// An entry timestamped exactly at the cutoff is still current.
			if published.Before(cutoff) {
				continue
			}

			if entry.Link == "" || !a.cache.Add(entry.Link) {
				continue
			}

			title := entry.Title
			if title == "" {
				title = "(no title)"
			}

			items = append(items, model.NewsItem{
				Title:       title,
				Link:        entry.Link,
				Summary:     cleanSummary(entry.Description),
				PublishedAt: published,
			})
			accepted++
		}
		slog.Info("feed processed", "url", src, "entries", len(feed.Items), "accepted", accepted)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	if err := a.cache.Persist(); err != nil {
		return items, err
	}
	return items, nil
}

// cleanSummary strips markup, collapses whitespace and truncates to the
// summary character budget.
func cleanSummary(s string) string {
	text := strings.Join(strings.Fields(sanitize.HTML(s)), " ")
	runes := []rune(text)
	if len(runes) > summaryMaxRunes {
		return string(runes[:summaryMaxRunes])
	}
	return text
}
