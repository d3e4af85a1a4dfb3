package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory fixed-window rate limiter.
// Votes are cheap to spam, so write endpoints sit behind this; a
// distributed deployment would move the counters to a shared store.
type RateLimiter struct {
	callers  map[string]*callerWindow
	requests int
	window   time.Duration
	mu       sync.Mutex
}

type callerWindow struct {
	resetTime time.Time
	count     int
}

// NewRateLimiter creates a rate limiter allowing requests per window.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		callers:  make(map[string]*callerWindow),
		requests: requests,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// Middleware returns the rate limiting middleware. Authenticated callers
// are limited per user id so voters behind one NAT don't share a budget;
// anonymous callers fall back to per-IP limiting.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := callerKey(r)

		if !rl.allow(callerID) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow checks whether the caller has budget left in the current window.
func (rl *RateLimiter) allow(callerID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	caller, exists := rl.callers[callerID]
	if !exists {
		rl.callers[callerID] = &callerWindow{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if now.After(caller.resetTime) {
		caller.count = 1
		caller.resetTime = now.Add(rl.window)
		return true
	}

	if caller.count < rl.requests {
		caller.count++
		return true
	}

	return false
}

// cleanup removes expired caller entries periodically.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for callerID, caller := range rl.callers {
			if now.After(caller.resetTime) {
				delete(rl.callers, callerID)
			}
		}
		rl.mu.Unlock()
	}
}

// callerKey identifies the caller: user id when authenticated, client IP
// otherwise. Must run after the Identity middleware to see the user id.
func callerKey(r *http.Request) string {
	if userID := GetUserID(r); userID != 0 {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + clientIP(r)
}

// clientIP extracts the client IP from the request.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
