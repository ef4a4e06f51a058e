package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fintracker/finance-tracker/internal/api/middleware"
	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubGoalService возвращает заданную ошибку из GetByID и Delete
type stubGoalService struct {
	service.GoalService
	err error
}

func (s *stubGoalService) GetByID(context.Context, uuid.UUID, uuid.UUID) (*models.Goal, error) {
	return nil, s.err
}

func (s *stubGoalService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "validation", err: fmt.Errorf("%w: name is required", service.ErrValidation), wantStatus: http.StatusBadRequest, wantBody: "name is required"},
		{name: "goal not found", err: service.ErrGoalNotFound, wantStatus: http.StatusNotFound, wantBody: "goal not found"},
		{name: "investment not found", err: service.ErrInvestmentNotFound, wantStatus: http.StatusNotFound, wantBody: "investment not found"},
		{name: "store failure", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantBody: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewGoalHandler(&stubGoalService{err: tt.err})
			router := gin.New()
			router.GET("/goals/:id", func(c *gin.Context) {
				c.Set(middleware.UserIDKey, uuid.New())
				h.GetByID(c)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/"+uuid.NewString(), nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %q", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "connection refused") {
				t.Error("internal error leaked to client")
			}
		})
	}
}

func TestGoalHandler_DeleteMalformedID(t *testing.T) {
	h := NewGoalHandler(&stubGoalService{})
	router := gin.New()
	router.DELETE("/goals/:id", h.Delete)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/goals/123", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantErr   bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "date-only end covers whole day",
			query:     "startDate=2025-03-01&endDate=2025-03-31",
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "timestamps kept as is",
			query:     "startDate=2025-03-01T10:00:00Z&endDate=2025-03-02T10:00:00Z",
			wantStart: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "default start is 30 days before end",
			query:     "endDate=2025-03-31T00:00:00Z",
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{name: "bad start", query: "startDate=yesterday", wantErr: true},
		{name: "bad end", query: "endDate=31.03.2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/reports/summary?"+tt.query, nil)

			start, end, err := parseDateRange(c)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestParseDateRange_DefaultsToLast30Days(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/summary", nil)

	start, end, err := parseDateRange(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(end) > time.Minute {
		t.Errorf("end = %v, want now", end)
	}
	if got := end.Sub(start); got != 30*24*time.Hour {
		t.Errorf("window = %s, want 720h", got)
	}
}

// Сервисы не заданы: если запрос дойдет до них, Recovery вернет 500
func TestHandlers_BindingRejectsBadShapes(t *testing.T) {
	goals := NewGoalHandler(&stubGoalService{})
	transactions := NewTransactionHandler(struct{ service.TransactionService }{})
	investments := NewInvestmentHandler(struct{ service.InvestmentService }{})

	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/goals", goals.Create)
	router.PUT("/goals/:id/add-funds", goals.AddFunds)
	router.POST("/transactions", transactions.Create)
	router.POST("/investments", investments.Create)

	addFunds := "/goals/" + uuid.New().String() + "/add-funds"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "goal without name", method: http.MethodPost, path: "/goals", body: `{"target":100}`},
		{name: "goal without target", method: http.MethodPost, path: "/goals", body: `{"name":"Bike"}`},
		{name: "add funds without amount", method: http.MethodPut, path: addFunds, body: `{}`},
		{name: "add funds with string amount", method: http.MethodPut, path: addFunds, body: `{"amount":"lots"}`},
		{name: "transaction with unknown type", method: http.MethodPost, path: "/transactions", body: `{"type":"transfer","amount":10,"category":"Food"}`},
		{name: "transaction without type", method: http.MethodPost, path: "/transactions", body: `{"amount":10,"category":"Food"}`},
		{name: "transaction without amount", method: http.MethodPost, path: "/transactions", body: `{"type":"income","category":"Salary"}`},
		{name: "investment without name", method: http.MethodPost, path: "/investments", body: `{"type":"stocks","investedAmount":10}`},
		{name: "investment without type", method: http.MethodPost, path: "/investments", body: `{"name":"ETF","investedAmount":10}`},
		{name: "investment without invested amount", method: http.MethodPost, path: "/investments", body: `{"name":"ETF","type":"stocks"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "invalid request body") {
				t.Errorf("body = %s, want binding error", w.Body.String())
			}
		})
	}
}
