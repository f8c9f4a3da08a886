package signature

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// NonceCache remembers nonces for ttl. When it is full the oldest entry is
// evicted, so size must cover the traffic of one ttl window.
type NonceCache struct {
	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

func NewNonceCache(size int, ttl time.Duration) *NonceCache {
	return &NonceCache{
		seen: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

// Add records nonce and reports whether it was new.
func (c *NonceCache) Add(nonce string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seen.Contains(nonce) {
		return false
	}
	c.seen.Add(nonce, struct{}{})
	return true
}

func (c *NonceCache) Len() int {
	return c.seen.Len()
}
