// Package middleware provides authentication, logging, and admission
// middleware for the application.
package middleware

import (
	"fmt"
	"sync"
	"time"

	"agora/internal/observability"

	"github.com/gofiber/fiber/v2"
)

type windowRecord struct {
	count       int
	windowStart time.Time
}

// FixedWindowLimiter enforces a per-client fixed-window request quota held
// entirely in process memory. Each client gets its own window; the first
// request after a window elapses resets the count rather than sliding it.
// Rejected requests do not consume quota.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	route   string
	limit   int
	window  time.Duration
	clients map[string]windowRecord

	// now is replaceable in tests.
	now func() time.Time
}

// NewFixedWindowLimiter returns a limiter for the given route allowing `limit`
// requests per `window` per client.
func NewFixedWindowLimiter(route string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		route:   route,
		limit:   limit,
		window:  window,
		clients: make(map[string]windowRecord),
		now:     time.Now,
	}
}

// Allow records a request for clientID and reports whether it fits the
// current window.
func (l *FixedWindowLimiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.clients[clientID]
	if !ok || now.Sub(rec.windowStart) >= l.window {
		l.clients[clientID] = windowRecord{count: 1, windowStart: now}
		return true
	}
	if rec.count >= l.limit {
		return false
	}
	rec.count++
	l.clients[clientID] = rec
	return true
}

// Message is the rejection body text, fixed per limiter configuration.
func (l *FixedWindowLimiter) Message() string {
	return fmt.Sprintf("Rate limit exceeded on %s. Allowed %d requests every %d seconds.",
		l.route, l.limit, int(l.window/time.Second))
}

// Handler returns a Fiber middleware keyed by client IP. Clients without a
// resolvable address share the "anonymous" bucket.
func (l *FixedWindowLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.IP()
		if clientID == "" {
			clientID = "anonymous"
		}

		if !l.Allow(clientID) {
			observability.RateLimitRejections.WithLabelValues(l.route).Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":  "fail",
				"message": l.Message(),
			})
		}
		return c.Next()
	}
}
