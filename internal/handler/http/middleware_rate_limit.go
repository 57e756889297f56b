package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const visitorTTL = time.Hour

// visitor tracks the limiter and last seen time of one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors maps client IPs to their token buckets.
type visitors struct {
	mu          sync.Mutex
	val         map[string]*visitor
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
	now         func() time.Time
}

func newVisitors(limit rate.Limit, burst int) *visitors {
	return &visitors{
		val:         make(map[string]*visitor),
		limit:       limit,
		burst:       burst,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// allow takes one token from ip's bucket, creating the bucket on first use.
func (vs *visitors) allow(ip string) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := vs.now()
	if now.Sub(vs.lastCleanup) > visitorTTL {
		vs.cleanup(now)
	}

	v, ok := vs.val[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vs.limit, vs.burst)}
		vs.val[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// cleanup drops visitors not seen for visitorTTL. vs.mu must be held.
func (vs *visitors) cleanup(now time.Time) {
	for ip, v := range vs.val {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
	vs.lastCleanup = now
}

func (vs *visitors) len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.val)
}

func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.visitors == nil {
		return next
	}

	limit := strconv.FormatFloat(float64(h.visitors.limit), 'f', -1, 64)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.visitors.allow(clientIP(r)) {
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", "0")
			h.respondError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of r.RemoteAddr, or RemoteAddr unchanged
// when it carries no port (as set by middleware.RealIP when TrustProxy is on).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
