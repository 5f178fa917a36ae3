package fetcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate enforces a courtesy interval between requests to the same host.
// One Gate is shared by every Fetcher of an analysis run so that concurrent
// fallbacks against one origin are serialized.
type Gate struct {
	delay time.Duration
	mu    sync.Mutex
	hosts map[string]*hostGate
}

// hostGate tracks one host. last is the time of the latest marked request;
// limiter spaces the waiting requests.
type hostGate struct {
	last    time.Time
	limiter *rate.Limiter
}

// NewGate creates a Gate that spaces requests to a host at least delay apart.
// A non-positive delay disables waiting.
func NewGate(delay time.Duration) *Gate {
	return &Gate{
		delay: delay,
		hosts: make(map[string]*hostGate),
	}
}

// Delay returns the courtesy interval.
func (g *Gate) Delay() time.Duration {
	return g.delay
}

// host returns the state for host, creating it on first use.
// The caller must hold g.mu.
func (g *Gate) host(host string) *hostGate {
	key := strings.ToLower(host)

	hg, ok := g.hosts[key]
	if !ok {
		hg = &hostGate{limiter: rate.NewLimiter(rate.Every(g.delay), 1)}
		g.hosts[key] = hg
	}
	return hg
}

// Mark records a request to host that was not allowed to wait.
// It never blocks.
func (g *Gate) Mark(host string) {
	if g.delay <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.host(host).last = time.Now()
}

// Wait blocks until at least the delay has passed since the latest marked
// request to host and since the previous Wait on host, or until ctx is done.
func (g *Gate) Wait(ctx context.Context, host string) error {
	if g.delay <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	hg := g.host(host)
	until := hg.last.Add(g.delay)
	g.mu.Unlock()

	if d := time.Until(until); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return hg.limiter.Wait(ctx)
}
