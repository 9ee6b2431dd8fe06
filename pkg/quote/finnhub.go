package quote

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnhubStrategy reads realtime quotes from the Finnhub API, trying each
// configured symbol alias in order.
type FinnhubStrategy struct {
	client  *finnhub.DefaultApiService
	symbols []string
}

func NewFinnhubStrategy(apiKey string, symbols ...string) *FinnhubStrategy {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &FinnhubStrategy{
		client:  finnhub.NewAPIClient(cfg).DefaultApi,
		symbols: symbols,
	}
}

func (s *FinnhubStrategy) Name() string {
	return "finnhub"
}

func (s *FinnhubStrategy) Fetch(ctx context.Context) (Quote, error) {
	var lastErr error
	for _, sym := range s.symbols {
		res, _, err := s.client.Quote(ctx).Symbol(sym).Execute()
		if err != nil {
			lastErr = fmt.Errorf("finnhub quote %s: %w", sym, err)
			continue
		}
		price := float64(res.GetC())
		if price <= 0 {
			lastErr = fmt.Errorf("finnhub quote %s: no price", sym)
			continue
		}
		return Quote{
			Symbol:    sym,
			Price:     price,
			PrevClose: float64(res.GetPc()),
		}, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("finnhub: no symbols configured")
	}
	return Quote{}, lastErr
}
