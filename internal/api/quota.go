package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"go.uber.org/zap"
)

// idleClientTTL is how long an unseen client's limiter is kept.
const idleClientTTL = 10 * time.Minute

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// quota is a per-client token bucket keyed by remote IP.
type quota struct {
	perMinute int
	limit     rate.Limit
	burst     int

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

// newQuota allows perMinute requests per client with the given burst. A
// non-positive perMinute disables the quota.
func newQuota(perMinute, burst int) *quota {
	q := &quota{
		perMinute: perMinute,
		limit:     rate.Inf,
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
		now:       time.Now,
	}
	if perMinute > 0 {
		q.limit = rate.Limit(float64(perMinute) / 60)
		if q.burst <= 0 {
			q.burst = 1
		}
	}
	return q
}

func (q *quota) allow(client string) bool {
	if q.limit == rate.Inf {
		return true
	}
	now := q.now()

	q.mu.Lock()
	defer q.mu.Unlock()

	if now.Sub(q.lastSweep) > time.Minute {
		for k, c := range q.clients {
			if now.Sub(c.seen) > idleClientTTL {
				delete(q.clients, k)
			}
		}
		q.lastSweep = now
	}

	c, ok := q.clients[client]
	if !ok {
		c = &clientLimiter{lim: rate.NewLimiter(q.limit, q.burst)}
		q.clients[client] = c
	}
	c.seen = now
	return c.lim.AllowN(now, 1)
}

// retryAfter is the wait, in whole seconds, for one token to refill.
func (q *quota) retryAfter() int {
	if q.perMinute <= 0 {
		return 1
	}
	return max(1, (60+q.perMinute-1)/q.perMinute)
}

func (q *quota) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !q.allow(client) {
			zap.L().Warn("api: quota exceeded", zap.String("client", client), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(q.retryAfter()))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
