package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultReportWindow = 30 * 24 * time.Hour

// respondError переводит ошибки сервисов в HTTP-статус; тело всегда {"error": ...}.
// Внутренние ошибки клиенту не раскрываются, они уходят в лог через c.Error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGoalNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrInvestmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// parseDateRange читает startDate/endDate; по умолчанию последние 30 дней.
// endDate без времени (YYYY-MM-DD) включает весь день.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	end := time.Now()
	if e := c.Query("endDate"); e != "" {
		t, err := models.ParseDate(e)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("endDate: %w", err)
		}
		if len(e) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = t
	}

	start := end.Add(-defaultReportWindow)
	if s := c.Query("startDate"); s != "" {
		t, err := models.ParseDate(s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("startDate: %w", err)
		}
		start = t
	}

	return start, end, nil
}
