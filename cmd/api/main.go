package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/flyer19820218/finance-daily-news/internal/config"
	"github.com/flyer19820218/finance-daily-news/internal/handler"
	"github.com/flyer19820218/finance-daily-news/internal/store"
	"github.com/flyer19820218/finance-daily-news/pkg/quote"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	st := store.New(cfg.DataDir)
	reportHandler := handler.NewReportHandler(st)

	resolver := quote.NewResolver(cfg.QuoteTTL)
	market := quote.NewMarket(resolver, cfg.Instruments())
	marketHandler := handler.NewMarketHandler(market)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/report/latest", reportHandler.GetLatest)
	r.GET("/report/history", reportHandler.GetHistoryDates)
	r.GET("/report/history/:date", reportHandler.GetHistoryByDate)
	r.GET("/market", marketHandler.GetMarket)
	r.GET("/health", reportHandler.GetHealth)

	err := r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
