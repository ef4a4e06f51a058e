package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fintracker/finance-tracker/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubAuth struct {
	userID uuid.UUID
}

func (s stubAuth) ValidateToken(token string) (*service.Claims, error) {
	if token != "good" {
		return nil, service.ErrInvalidToken
	}
	return &service.Claims{UserID: s.userID}, nil
}

func TestAuth(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantError: "authorization header required"},
		{name: "no scheme", header: "good", wantStatus: http.StatusUnauthorized, wantError: "invalid authorization header format"},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "invalid authorization header format"},
		{name: "rejected token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantError: "invalid or expired token"},
		{name: "valid", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(stubAuth{userID: owner}))
			router.GET("/me", func(c *gin.Context) {
				c.String(http.StatusOK, GetUserID(c).String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantError != "" && !strings.Contains(w.Body.String(), tt.wantError) {
				t.Errorf("body = %s, want %q", w.Body.String(), tt.wantError)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != owner.String() {
				t.Errorf("user id = %s, want %s", w.Body.String(), owner)
			}
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if id := GetUserID(c); id != uuid.Nil {
		t.Errorf("GetUserID = %s, want nil uuid", id)
	}
}

func TestCORS(t *testing.T) {
	const origin = "http://localhost:5173"
	router := gin.New()
	router.Use(CORS(origin))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("allow-origin = %q", got)
		}
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want empty", got)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	for _, want := range []string{`"status":404`, `"method":"GET"`, `"path":"/missing"`, `"level":"warning"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %s does not contain %s", out, want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, 15*time.Minute)
	limiter.now = func() time.Time { return now }

	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := get("10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := get("10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Too many requests`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if got := w.Header().Get("RateLimit-Remaining"); got != "0" {
		t.Errorf("RateLimit-Remaining = %q, want 0", got)
	}
	if got := w.Header().Get("Retry-After"); got != "900" {
		t.Errorf("Retry-After = %q, want 900", got)
	}

	if w := get("10.0.0.2"); w.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", w.Code)
	}

	now = now.Add(15 * time.Minute)
	if w := get("10.0.0.1"); w.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", w.Code)
	}
}

func TestRateLimiter_SweepsExpiredClients(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("b")
	now = now.Add(2 * time.Minute)
	limiter.Allow("c")

	if len(limiter.clients) != 1 {
		t.Errorf("tracked clients = %d, want 1", len(limiter.clients))
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	for name, want := range map[string]string{
		"X-Content-Type-Options":     "nosniff",
		"X-Frame-Options":            "SAMEORIGIN",
		"Referrer-Policy":            "no-referrer",
		"Cross-Origin-Opener-Policy": "same-origin",
	} {
		if got := w.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("Content-Security-Policy not set")
	}
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/x", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	big := `{"name":"` + strings.Repeat("x", 64) + `"}`
	tests := []struct {
		name       string
		body       string
		chunked    bool
		wantStatus int
	}{
		{name: "small body", body: `{"a":"b"}`, wantStatus: http.StatusOK},
		{name: "declared length too large", body: big, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "unknown length too large", body: big, chunked: true, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.chunked {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
