package quote

import (
	"context"

	"github.com/flyer19820218/finance-daily-news/internal/model"
)

// Market binds a resolver to a fixed set of tracked instruments.
type Market struct {
	resolver    *Resolver
	instruments []Instrument
}

func NewMarket(resolver *Resolver, instruments []Instrument) *Market {
	return &Market{resolver: resolver, instruments: instruments}
}

func (m *Market) Snapshot(ctx context.Context) map[string]model.QuoteRecord {
	return m.resolver.ResolveAll(ctx, m.instruments)
}
