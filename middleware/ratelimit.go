package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Tier limits expressed per second with a burst allowance. Reads are
// considerably cheaper than writes.
const (
	readLimit  = rate.Limit(1)
	readBurst  = 60
	writeLimit = rate.Limit(0.5)
	writeBurst = 20
)

// RateLimitMiddleware applies per-client token buckets in two tiers. Buckets
// are keyed by client address and created lazily.
type RateLimitMiddleware struct {
	mu            sync.Mutex
	readLimiters  map[string]*rate.Limiter
	writeLimiters map[string]*rate.Limiter
}

func NewRateLimitMiddleware() *RateLimitMiddleware {
	return &RateLimitMiddleware{
		readLimiters:  make(map[string]*rate.Limiter),
		writeLimiters: make(map[string]*rate.Limiter),
	}
}

// WithReadLimit wraps a handler with the read-tier rate limit
func (m *RateLimitMiddleware) WithReadLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(m.readLimiters, readLimit, readBurst, clientKey(r)) {
			log.Printf("⛔ Read rate limit exceeded for %s", r.RemoteAddr)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// WithWriteLimit wraps a handler with the stricter write-tier rate limit
func (m *RateLimitMiddleware) WithWriteLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(m.writeLimiters, writeLimit, writeBurst, clientKey(r)) {
			log.Printf("⛔ Write rate limit exceeded for %s", r.RemoteAddr)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func (m *RateLimitMiddleware) allow(
	limiters map[string]*rate.Limiter,
	limit rate.Limit,
	burst int,
	key string,
) bool {
	m.mu.Lock()
	limiter, ok := limiters[key]
	if !ok {
		limiter = rate.NewLimiter(limit, burst)
		limiters[key] = limiter
	}
	m.mu.Unlock()

	return limiter.Allow()
}

// clientKey identifies the requesting client, honoring the first
// X-Forwarded-For hop when running behind a proxy
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
