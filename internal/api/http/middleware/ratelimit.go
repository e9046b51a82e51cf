package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	MsgTooManyRequests = "Demasiadas peticiones, intenta más tarde"
	limiterIdleTTL     = 10 * time.Minute
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key. Buckets idle for longer
// than limiterIdleTTL are evicted during later calls.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Len reports how many client buckets are currently tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep must be called with mu held.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	for key, cl := range l.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(key(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": MsgTooManyRequests})
			return
		}
		c.Next()
	}
}

// ClientIP charges requests to the caller's address.
func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}
