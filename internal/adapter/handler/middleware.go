package handler

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type ctxKey int

const occupantKey ctxKey = iota

// Occupant stores the caller's X-Occupant-ID in the request context.
func Occupant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(OccupantHeader))
		if id != "" {
			r = r.WithContext(context.WithValue(r.Context(), occupantKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

func OccupantFrom(ctx context.Context) string {
	id, _ := ctx.Value(occupantKey).(string)
	return id
}

// AccessLog writes one zerolog event per request.
func AccessLog(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

const (
	defaultLimiterIdleTTL = 10 * time.Minute
	defaultLimiterMaxKeys = 10000
)

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long a key may go unseen before its bucket is dropped.
	IdleTTL time.Duration
	// MaxKeys bounds the tracked keys; callers beyond it share one bucket.
	MaxKeys int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per occupant, falling back to the
// client address for anonymous callers.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	overflow  *rate.Limiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	maxKeys   int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}
	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = defaultLimiterMaxKeys
	}

	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		overflow:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     burst,
		idleTTL:   idleTTL,
		maxKeys:   maxKeys,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *RateLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.now = now
	l.lastSweep = now()
}

func (l *RateLimiter) Allow(key string) bool {
	return l.limiterFor(key).AllowN(l.clock(), 1)
}

// Len reports how many keys currently hold their own bucket.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *RateLimiter) clock() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now()
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	if e, ok := l.limiters[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	if len(l.limiters) >= l.maxKeys {
		return l.overflow
	}

	e := &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.limiters[key] = e
	return e.limiter
}

// sweep must be called with mu held.
func (l *RateLimiter) sweep(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l.limit <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := OccupantFrom(r.Context())
		if key == "" {
			key = clientAddr(r)
		}

		if !l.Allow(key) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
