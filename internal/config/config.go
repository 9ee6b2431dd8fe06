package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flyer19820218/finance-daily-news/pkg/quote"
)

var defaultFeeds = []string{
	"https://news.google.com/rss/search?q=finance+OR+stock&hl=zh-TW&gl=TW&ceid=TW:zh-Hant",
	"https://news.google.com/rss/search?q=台股+OR+美股&hl=zh-TW&gl=TW&ceid=TW:zh-Hant",
}

type Config struct {
	DataDir    string
	Feeds      []string
	NewsWindow time.Duration
	NewsLimit  int
	CacheLimit int
	QuoteTTL   time.Duration

	FinnhubAPIKey   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	TelegramToken   string
	TelegramChatID  string
	FrontendURL     string
}

// Load reads the configuration from environment variables, falling back to
// the defaults the daily run uses.
func Load() *Config {
	return &Config{
		DataDir:    envString("DATA_DIR", "data"),
		Feeds:      envList("RSS_FEEDS", defaultFeeds),
		NewsWindow: time.Duration(envInt("NEWS_WINDOW_HOURS", 24)) * time.Hour,
		NewsLimit:  envInt("NEWS_LIMIT", 20),
		CacheLimit: envInt("NEWS_CACHE_LIMIT", 200),
		QuoteTTL:   time.Duration(envInt("QUOTE_TTL_SECONDS", 60)) * time.Second,

		FinnhubAPIKey:   os.Getenv("FINNHUB_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID:  os.Getenv("TELEGRAM_CHAT_ID"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
	}
}

func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "news_cache.json")
}

// Instruments returns the tracked market snapshot in display order, each with
// its ordered strategy chain. The Taiwan futures contract has no vendor API,
// so it scrapes first and falls back to the SGX continuous contract on Yahoo;
// the US futures and indices go straight to Yahoo; the two ADR/equity names
// prefer Finnhub realtime quotes when a key is configured.
func (c *Config) Instruments() []quote.Instrument {
	equity := func(symbol string) []quote.Strategy {
		var chain []quote.Strategy
		if c.FinnhubAPIKey != "" {
			chain = append(chain, quote.NewFinnhubStrategy(c.FinnhubAPIKey, symbol))
		}
		return append(chain, quote.NewYahooStrategy(symbol))
	}

	return []quote.Instrument{
		{
			Name: "富台指期（FTX）",
			Strategies: []quote.Strategy{
				quote.NewScrapeStrategy("wantgoo", "https://www.wantgoo.com/global/sgxtw", "FTX", ".deal-price", ".pre-close-price"),
				quote.NewYahooStrategy("FTX=F"),
			},
		},
		{
			Name:       "費半（SOX）",
			Strategies: []quote.Strategy{quote.NewYahooStrategy("^SOX")},
		},
		{
			Name:       "道瓊期（YM）",
			Strategies: []quote.Strategy{quote.NewYahooStrategy("YM=F")},
		},
		{
			Name:       "納指期（NQ）",
			Strategies: []quote.Strategy{quote.NewYahooStrategy("NQ=F")},
		},
		{
			Name:       "台積電 ADR（TSM）",
			Strategies: equity("TSM"),
		},
		{
			Name:       "NVIDIA（NVDA）",
			Strategies: equity("NVDA"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
