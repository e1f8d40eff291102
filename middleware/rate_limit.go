package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	defaultSignInRate  = 0.5
	defaultSignInBurst = 5
	maxTrackedClients  = 10000
)

// limiterCache hands out one token bucket per key.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds drops every bucket once more than maxSize keys are tracked.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// SignInLimiter throttles sign-in attempts per client IP.
type SignInLimiter struct {
	cache *limiterCache[string]
	done  chan struct{}
	once  sync.Once
}

func NewSignInLimiter(rps float64, burst int) *SignInLimiter {
	if rps <= 0 {
		rps = defaultSignInRate
	}
	if burst <= 0 {
		burst = defaultSignInBurst
	}
	return &SignInLimiter{
		cache: newLimiterCache[string](rps, burst),
		done:  make(chan struct{}),
	}
}

// StartCleanup periodically resets the bucket map so it cannot grow
// without bound. It stops when Stop is called.
func (l *SignInLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if l.cache.clearIfExceeds(maxTrackedClients) {
					slog.Info("sign-in limiter reset", "max_clients", maxTrackedClients)
				}
			case <-l.done:
				return
			}
		}
	}()
}

func (l *SignInLimiter) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *SignInLimiter) Allow(ip string) bool {
	return l.cache.get(ip).Allow()
}

func (l *SignInLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "2")
			HTTPHelper.SendError(c, http.StatusTooManyRequests, "Too many sign-in attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
