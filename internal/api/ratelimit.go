package api

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client request counter. Windows are
// keyed by remote IP; counts reset when the window elapses. A background
// goroutine prunes expired windows so the map does not grow unbounded.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	window  time.Duration
	max     int
	done    chan struct{}
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientWindow),
		window:  window,
		max:     max,
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// allow records a request for the given key and reports whether it is within
// the window budget.
func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok || now.After(cw.resetAt) {
		rl.clients[key] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	cw.count++
	return cw.count <= rl.max
}

// cleanupLoop periodically removes expired windows.
func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, cw := range rl.clients {
				if now.After(cw.resetAt) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *rateLimiter) stop() {
	close(rl.done)
}

// rateLimitMiddleware enforces the per-IP request budget when rate limiting
// is enabled in the server configuration.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiter.allow(host) {
			writeError(w, http.StatusTooManyRequests, CodeRateLimited, "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
