// Package resolve maps IP addresses to hostnames via reverse DNS, with an
// optional memoization cache in front of the lookup.
package resolve

import (
	"net/netip"

	"github.com/sirupsen/logrus"
)

// Resolver answers hostname lookups for the pipeline. With caching enabled,
// the first lookup for an IP is authoritative for the life of the process: a
// later change to the PTR record is never observed. With caching disabled,
// every call hits the network.
type Resolver struct {
	l        *logrus.Logger
	lookuper Lookuper
	cache    Cache
	caching  bool
}

func New(l *logrus.Logger, lookuper Lookuper, cache Cache, caching bool) *Resolver {
	return &Resolver{
		l:        l,
		lookuper: lookuper,
		cache:    cache,
		caching:  caching,
	}
}

// Resolve returns the hostname for ip, or "" when no name could be found.
// Lookup failures are not errors here; the caller falls back to the raw IP.
func (r *Resolver) Resolve(ip netip.Addr) string {
	if r.caching {
		if host, ok := r.cache.Get(ip); ok {
			return host
		}
	}

	host, err := r.lookuper.LookupAddr(ip)
	if err != nil {
		r.l.WithField("ip", ip).WithError(err).Debug("reverse lookup failed")
		host = ""
	}
	// A lookup that hands back the address itself is as good as no answer.
	if host == ip.String() {
		host = ""
	}

	if r.caching {
		r.cache.Put(ip, host)
	}
	return host
}

// CacheLen reports how many addresses are memoized, for the stats command.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
