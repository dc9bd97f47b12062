package resolve

import (
	"net/netip"
	"sync"
)

// Cache memoizes reverse lookup results. An empty string is a valid cached
// value and records a lookup that failed or returned nothing, so repeated
// misses don't repeat the network call. Implementations choose their own
// eviction policy; MapCache keeps everything.
type Cache interface {
	Get(ip netip.Addr) (string, bool)
	Put(ip netip.Addr, host string)
	Len() int
}

// MapCache is an unbounded in-memory cache: one entry per distinct IP ever
// looked up, kept for the lifetime of the process. Entries never expire, so a
// hostname change after first sight is not picked up. Deployments that need a
// memory cap can swap in a bounded Cache implementation.
type MapCache struct {
	mu      sync.Mutex
	entries map[netip.Addr]string
}

func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[netip.Addr]string)}
}

func (c *MapCache) Get(ip netip.Addr) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	host, ok := c.entries[ip]
	return host, ok
}

func (c *MapCache) Put(ip netip.Addr, host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ip] = host
}

func (c *MapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
