package quote

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
)

// Quote is the raw result of one strategy attempt. PrevClose of zero means
// the source did not report a previous close.
type Quote struct {
	Symbol    string
	Price     float64
	PrevClose float64
}

// Strategy is one named way of obtaining a price for an instrument. A
// strategy may try several symbol aliases internally; alias order is fixed
// by configuration.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context) (Quote, error)
}

// Instrument pairs a display name with its ordered strategy chain.
type Instrument struct {
	Name       string
	Strategies []Strategy
}

// Resolver tries strategies in order until one yields a usable price. Results
// are memoized per instrument for a short TTL so repeated snapshot reads do
// not hammer the upstream sources.
type Resolver struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	memo map[string]memoEntry
}

type memoEntry struct {
	record  model.QuoteRecord
	expires time.Time
}

func NewResolver(ttl time.Duration) *Resolver {
	return &Resolver{
		ttl:  ttl,
		now:  time.Now,
		memo: make(map[string]memoEntry),
	}
}

// Resolve always returns a record: ok with a price from the first strategy
// that produced one, or ok=false when every strategy failed. A strategy
// error, a non-positive price, or a panic inside a vendor SDK all count as
// that strategy failing and resolution moves on to the next.
func (r *Resolver) Resolve(ctx context.Context, instrument string, strategies []Strategy) model.QuoteRecord {
	if rec, ok := r.cached(instrument); ok {
		return rec
	}

	rec := model.QuoteRecord{AsOf: r.now().UTC()}
	for _, s := range strategies {
		q, err := r.try(ctx, s)
		if err != nil {
			slog.Warn("quote source failed", "instrument", instrument, "source", s.Name(), "error", err)
			continue
		}
		if q.Price <= 0 {
			slog.Warn("quote source returned no price", "instrument", instrument, "source", s.Name())
			continue
		}

		rec.OK = true
		rec.Ticker = q.Symbol
		rec.Source = s.Name()
		price := q.Price
		rec.Price = &price
		if q.PrevClose != 0 {
			prev := q.PrevClose
			change := price - prev
			pct := change / prev * 100
			rec.PrevClose = &prev
			rec.Change = &change
			rec.Pct = &pct
		}
		break
	}

	r.store(instrument, rec)
	return rec
}

// ResolveAll resolves every instrument independently; one instrument failing
// completely never affects the others.
func (r *Resolver) ResolveAll(ctx context.Context, instruments []Instrument) map[string]model.QuoteRecord {
	out := make(map[string]model.QuoteRecord, len(instruments))
	for _, inst := range instruments {
		out[inst.Name] = r.Resolve(ctx, inst.Name, inst.Strategies)
	}
	return out
}

// try shields the resolver from panics inside vendor SDKs, which have been
// observed on malformed quote payloads.
func (r *Resolver) try(ctx context.Context, s Strategy) (q Quote, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: panic: %v", s.Name(), p)
		}
	}()
	return s.Fetch(ctx)
}

func (r *Resolver) cached(instrument string) (model.QuoteRecord, bool) {
	if r.ttl <= 0 {
		return model.QuoteRecord{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.memo[instrument]
	if !ok || r.now().After(entry.expires) {
		return model.QuoteRecord{}, false
	}
	return entry.record, true
}

func (r *Resolver) store(instrument string, rec model.QuoteRecord) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo[instrument] = memoEntry{record: rec, expires: r.now().Add(r.ttl)}
}
