// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// clientWindow tracks recent request times for one client IP.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// RateLimiter throttles requests per client IP over a sliding window.
// The router mounts it on the sign-in endpoints to slow down credential
// guessing.
type RateLimiter struct {
	mu      sync.RWMutex
	windows map[string]*clientWindow
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter allowing limit requests per window.
// It starts a background goroutine that evicts idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// allow reports whether the given key is still within the rate limit and
// records the hit if so.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.RLock()
	win, exists := rl.windows[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Re-check under the write lock.
		win, exists = rl.windows[key]
		if !exists {
			win = &clientWindow{}
			rl.windows[key] = win
		}
		rl.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-rl.window)

	win.mu.Lock()
	defer win.mu.Unlock()

	// Drop hits that slid out of the window.
	recent := win.hits[:0]
	for _, ts := range win.hits {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	win.hits = recent

	if len(win.hits) >= rl.limit {
		return false
	}

	win.hits = append(win.hits, now)
	return true
}

// cleanup evicts clients with no hits inside the current window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, win := range rl.windows {
		win.mu.Lock()
		active := false
		for _, ts := range win.hits {
			if ts.After(cutoff) {
				active = true
				break
			}
		}
		win.mu.Unlock()

		if !active {
			delete(rl.windows, key)
		}
	}
}

// Middleware returns an HTTP middleware that rate-limits by client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, honoring X-Forwarded-For and
// X-Real-IP for requests that came through the reverse proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr, stripping the port.
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
