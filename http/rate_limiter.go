package http

import (
	"math"
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

// bucket holds fractional tokens so a client earns requests back
// continuously instead of all at once.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter gives every client burst requests per window, refilled in
// proportion to the time elapsed since its last request.
type RateLimiter struct {
	mu      sync.Mutex
	burst   float64
	perSec  float64
	clients map[string]*bucket
	now     func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		burst:       float64(burst),
		clients:     make(map[string]*bucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	if burst > 0 && window > 0 {
		rl.perSec = float64(burst) / window.Seconds()
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup forgets clients idle for longer than bucketCleanupThreshold.
// Their buckets would be full again anyway.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.clients {
		if now.Sub(b.lastSeen) > bucketCleanupThreshold {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow reports whether client may make a request now.
func (r *RateLimiter) Allow(client string) bool {
	ok, _ := r.Reserve(client)
	return ok
}

// Reserve takes one token from client's bucket. When the bucket is empty
// it returns false and how long until the next token is available.
func (r *RateLimiter) Reserve(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[client]
	if !ok {
		b = &bucket{tokens: r.burst, lastSeen: now}
		r.clients[client] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(r.burst, b.tokens+elapsed*r.perSec)
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if r.perSec == 0 {
		return false, 0
	}

	wait := (1 - b.tokens) / r.perSec
	return false, time.Duration(math.Ceil(wait * float64(time.Second)))
}
