package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/apitrail"
	"golang.org/x/time/rate"
)

var _ apitrail.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles requests with one token bucket per host. Hosts are
// compared case-insensitively and without their port.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host, without bursting. A non-positive rps disables throttling.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limit: limit,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to domain is allowed.
// Returns an error if ctx is done first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	host := strings.ToLower(domain)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}
