// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
)

const DefaultStaleAfter = 10 * time.Minute

type Config struct {
	// RequestsPerSecond is the sustained rate allowed per client
	RequestsPerSecond float64
	Burst             int
	StaleAfter        time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter applies a token bucket per client address
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	clients map[string]*clientLimiter

	now func() time.Time

	logger logging.LoggerInterface
}

func (l *Limiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.clients[ip] = cl
	}

	cl.lastSeen = l.now()

	return cl.limiter
}

// Middleware rejects requests above the client's rate with 429
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		limiter := l.get(ip)

		reservation := limiter.Reserve()
		if !reservation.OK() {
			l.reject(w, ip, 0)
			return
		}

		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			l.reject(w, ip, int(delay.Seconds())+1)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Burst))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) reject(w http.ResponseWriter, ip string, retryAfter int) {
	l.logger.Warnw("rate limit exceeded", "client", ip)

	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	types.WriteErrorMessage(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// Prune forgets clients not seen for StaleAfter, it is run as a scheduled job
func (l *Limiter) Prune(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.StaleAfter)
	for ip, cl := range l.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}

	return nil
}

// clientIP only trusts RemoteAddr, forwarded headers can be spoofed
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func NewLimiter(cfg Config, logger logging.LoggerInterface) *Limiter {
	l := new(Limiter)

	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}

	l.cfg = cfg
	l.clients = make(map[string]*clientLimiter)
	l.now = time.Now
	l.logger = logger

	return l
}
