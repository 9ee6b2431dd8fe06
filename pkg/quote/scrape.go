package quote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ScrapeStrategy pulls a price out of an HTML page with CSS selectors. Some
// Taiwan index pages have no vendor API, so this is the first choice for the
// local futures contract. The previous-close selector is optional.
type ScrapeStrategy struct {
	name         string
	url          string
	symbol       string
	priceSel     string
	prevCloseSel string
	httpClient   *http.Client
}

func NewScrapeStrategy(name, url, symbol, priceSel, prevCloseSel string) *ScrapeStrategy {
	return &ScrapeStrategy{
		name:         name,
		url:          url,
		symbol:       symbol,
		priceSel:     priceSel,
		prevCloseSel: prevCloseSel,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ScrapeStrategy) Name() string {
	return s.name
}

func (s *ScrapeStrategy) Fetch(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%s request: %w", s.name, err)
	}
	// The default Go User-Agent gets blocked by most quote pages.
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%s fetch: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%s fetch: status %d", s.name, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("%s parse: %w", s.name, err)
	}

	price, err := parsePrice(doc.Find(s.priceSel).First().Text())
	if err != nil {
		return Quote{}, fmt.Errorf("%s price: %w", s.name, err)
	}

	var prev float64
	if s.prevCloseSel != "" {
		if v, err := parsePrice(doc.Find(s.prevCloseSel).First().Text()); err == nil {
			prev = v
		}
	}

	return Quote{Symbol: s.symbol, Price: price, PrevClose: prev}, nil
}

func parsePrice(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty price text")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", text, err)
	}
	return v, nil
}
