// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration for one endpoint class.
type Config struct {
	WindowSize    time.Duration // sliding window for counting attempts
	MaxAttempts   int           // attempts allowed per window
	BanDuration   time.Duration // lockout after the limit is exceeded
	CleanupPeriod time.Duration // how often expired records are dropped
}

// DefaultAuthConfig returns sensible defaults for auth endpoints.
func DefaultAuthConfig() *Config {
	return &Config{
		WindowSize:    15 * time.Minute,
		MaxAttempts:   5,
		BanDuration:   30 * time.Minute,
		CleanupPeriod: 30 * time.Minute,
	}
}

// Info describes the limiter's decision for one request.
type Info struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

type record struct {
	count     int
	firstSeen time.Time
	bannedAt  time.Time
}

// MemoryLimiter is an in-memory fixed-window limiter keyed by an opaque
// identifier (normally the client IP).
type MemoryLimiter struct {
	config  *Config
	mu      sync.Mutex
	records map[string]*record
	stopCh  chan struct{}
}

func NewMemoryLimiter(config *Config) *MemoryLimiter {
	l := &MemoryLimiter{
		config:  config,
		records: make(map[string]*record),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow checks whether a request from identifier may proceed.
func (l *MemoryLimiter) Allow(identifier string) (bool, *Info) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	rec, exists := l.records[identifier]

	if !exists || now.Sub(rec.firstSeen) > l.config.WindowSize && rec.bannedAt.IsZero() {
		l.records[identifier] = &record{count: 1, firstSeen: now}
		return true, &Info{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	if !rec.bannedAt.IsZero() {
		if now.Sub(rec.bannedAt) < l.config.BanDuration {
			remaining := l.config.BanDuration - now.Sub(rec.bannedAt)
			return false, &Info{
				ResetTime:  rec.bannedAt.Add(l.config.BanDuration),
				RetryAfter: remaining,
				Banned:     true,
			}
		}
		// Ban expired, start a fresh window.
		l.records[identifier] = &record{count: 1, firstSeen: now}
		return true, &Info{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	rec.count++
	if rec.count > l.config.MaxAttempts {
		rec.bannedAt = now
		return false, &Info{
			ResetTime:  now.Add(l.config.BanDuration),
			RetryAfter: l.config.BanDuration,
			Banned:     true,
		}
	}

	return true, &Info{
		Allowed:   true,
		Remaining: l.config.MaxAttempts - rec.count,
		ResetTime: rec.firstSeen.Add(l.config.WindowSize),
	}
}

// RecordSuccess resets the attempt counter after a successful authentication.
func (l *MemoryLimiter) RecordSuccess(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, identifier)
}

// Close stops the cleanup goroutine.
func (l *MemoryLimiter) Close() {
	close(l.stopCh)
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for id, rec := range l.records {
		windowExpired := now.Sub(rec.firstSeen) > l.config.WindowSize && rec.bannedAt.IsZero()
		banExpired := !rec.bannedAt.IsZero() && now.Sub(rec.bannedAt) > l.config.BanDuration
		if windowExpired || banExpired {
			delete(l.records, id)
		}
	}
}

// ClientIP extracts the real client IP from a request, honoring proxy
// headers.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if parts := strings.Split(forwarded, ","); len(parts) > 0 {
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
