package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter applies a per-client token bucket. The per-minute rate is fixed
// at construction; buckets are keyed by client IP and evicted after sitting
// idle for idleEviction.
type RateLimiter struct {
	perMinute  int
	maxTokens  float64
	refillRate float64 // tokens per second

	buckets sync.Map // client IP -> *bucket
	stop    chan struct{}
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

const idleEviction = 10 * time.Minute

// NewRateLimiter creates a limiter allowing perMinute requests per client.
// Idle buckets are reaped every cleanupInterval; call Stop on shutdown.
func NewRateLimiter(perMinute int, cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		perMinute:  perMinute,
		maxTokens:  float64(perMinute),
		refillRate: float64(perMinute) / 60.0,
		stop:       make(chan struct{}),
	}
	go rl.reapIdle(cleanupInterval)
	return rl
}

// Stop terminates the background reaper.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit rejects clients that exceed the configured rate with 429 and a
// Retry-After hint.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.take(clientIP(r)) {
			retryAfter := int(60.0/float64(rl.perMinute)) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSONError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port RemoteAddr carries so one client maps to one
// bucket across connections.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) take(key string) bool {
	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     rl.maxTokens,
		lastRefill: time.Now(),
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.refillRate
	if b.tokens > rl.maxTokens {
		b.tokens = rl.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) reapIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastRefill)
				b.mu.Unlock()
				if idle > idleEviction {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
