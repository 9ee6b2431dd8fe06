package quote

import (
	"context"
	"fmt"
	"strings"

	"github.com/piquette/finance-go/future"
	"github.com/piquette/finance-go/quote"
)

// YahooStrategy reads quotes from Yahoo Finance. Symbols ending in "=F" are
// continuous futures contracts and go through the futures endpoint; anything
// else (equities, ADRs, ^ indices) uses the plain quote endpoint.
type YahooStrategy struct {
	symbols []string
}

func NewYahooStrategy(symbols ...string) *YahooStrategy {
	return &YahooStrategy{symbols: symbols}
}

func (s *YahooStrategy) Name() string {
	return "yahoo"
}

func (s *YahooStrategy) Fetch(ctx context.Context) (Quote, error) {
	var lastErr error
	for _, sym := range s.symbols {
		price, prev, err := fetchYahoo(sym)
		if err != nil {
			lastErr = err
			continue
		}
		if price <= 0 {
			lastErr = fmt.Errorf("yahoo %s: no price", sym)
			continue
		}
		return Quote{Symbol: sym, Price: price, PrevClose: prev}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("yahoo: no symbols configured")
	}
	return Quote{}, lastErr
}

func fetchYahoo(sym string) (price, prev float64, err error) {
	if strings.HasSuffix(sym, "=F") {
		f, err := future.Get(sym)
		if err != nil {
			return 0, 0, fmt.Errorf("yahoo future %s: %w", sym, err)
		}
		if f == nil {
			return 0, 0, fmt.Errorf("yahoo future %s: empty response", sym)
		}
		return f.Quote.RegularMarketPrice, f.Quote.RegularMarketPreviousClose, nil
	}

	q, err := quote.Get(sym)
	if err != nil {
		return 0, 0, fmt.Errorf("yahoo quote %s: %w", sym, err)
	}
	if q == nil {
		return 0, 0, fmt.Errorf("yahoo quote %s: empty response", sym)
	}
	return q.RegularMarketPrice, q.RegularMarketPreviousClose, nil
}
