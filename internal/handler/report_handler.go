package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/flyer19820218/finance-daily-news/internal/model"
	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	Latest() (*model.ReportPayload, error)
	History(date string) (*model.ReportPayload, error)
	HistoryDates() ([]string, error)
}

type ReportHandler struct {
	store ReportStore
}

func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

func (h *ReportHandler) GetLatest(c *gin.Context) {
	payload, err := h.store.Latest()
	if err != nil {
		slog.Error("error reading latest report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	if payload == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report generated yet"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(payload))
}

func (h *ReportHandler) GetHistoryDates(c *gin.Context) {
	dates, err := h.store.HistoryDates()
	if err != nil {
		slog.Error("error listing history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Dates: dates})
}

func (h *ReportHandler) GetHistoryByDate(c *gin.Context) {
	date := c.Param("date")

	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	payload, err := h.store.History(date)
	if err != nil {
		slog.Error("error reading history report", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}

	if payload == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report for that date"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(payload))
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
