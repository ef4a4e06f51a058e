package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter считает запросы с одного IP в фиксированном окне
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientWindow
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type clientWindow struct {
	start    time.Time
	requests int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow учитывает запрос и возвращает, сколько осталось в окне и когда оно сбросится
func (rl *RateLimiter) Allow(clientIP string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	client, ok := rl.clients[clientIP]
	if !ok || now.Sub(client.start) >= rl.window {
		client = &clientWindow{start: now}
		rl.clients[clientIP] = client
	}
	client.requests++

	reset = client.start.Add(rl.window)
	remaining = rl.limit - client.requests
	if remaining < 0 {
		remaining = 0
	}
	return client.requests <= rl.limit, remaining, reset
}

// sweep раз в окно выбрасывает клиентов с истекшим окном
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, client := range rl.clients {
		if now.Sub(client.start) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimit отвечает 429 после исчерпания лимита; заголовки RateLimit-* как в draft-ietf-httpapi-ratelimit-headers
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset := rl.Allow(c.ClientIP())

		resetSec := int(math.Ceil(reset.Sub(rl.now()).Seconds()))
		if resetSec < 0 {
			resetSec = 0
		}
		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(rl.limit))
		h.Set("RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("RateLimit-Reset", strconv.Itoa(resetSec))

		if !allowed {
			h.Set("Retry-After", strconv.Itoa(resetSec))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later."})
			return
		}
		c.Next()
	}
}
