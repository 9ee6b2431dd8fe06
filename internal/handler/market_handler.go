package handler

import (
	"context"
	"net/http"

	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/gin-gonic/gin"
)

type MarketResolver interface {
	Snapshot(ctx context.Context) map[string]model.QuoteRecord
}

type MarketHandler struct {
	resolver MarketResolver
}

func NewMarketHandler(resolver MarketResolver) *MarketHandler {
	return &MarketHandler{resolver: resolver}
}

// GetMarket resolves the tracked instruments and returns one record per
// instrument. Instruments with no available source come back with ok=false;
// the endpoint itself never fails.
func (h *MarketHandler) GetMarket(c *gin.Context) {
	records := h.resolver.Snapshot(c.Request.Context())

	res := make(map[string]QuoteResponse, len(records))
	for name, q := range records {
		res[name] = toQuoteResponse(q)
	}
	c.JSON(http.StatusOK, res)
}
