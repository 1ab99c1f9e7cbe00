package thesis

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/komsit37/invest/pkg/invest/types"
)

// CacheService decorates a Service with TTL+LRU cache.
type CacheService struct {
	next Service
	ttl  time.Duration
	size int
	now  func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // simple LRU order, oldest at index 0
}

type cacheEntry struct {
	at  time.Time
	rec types.ThesisRecord
}

func NewCacheService(next Service, ttl time.Duration, size int) *CacheService {
	if size < 1 {
		size = 1
	}
	return &CacheService{next: next, ttl: ttl, size: size, now: time.Now, items: make(map[string]cacheEntry)}
}

func (c *CacheService) key(ticker, market string) string {
	return strings.ToUpper(strings.TrimSpace(ticker)) + "|" + strings.ToLower(strings.TrimSpace(market))
}

// Len reports the number of cached entries.
func (c *CacheService) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Generate serves a fresh cached record or asks next for one. Concurrent
// misses on the same key share a single call to next. Entries age from
// when next returns. The shared call outlives a cancelled caller so the
// others still get a record.
func (c *CacheService) Generate(ctx context.Context, ticker, market string) (types.ThesisRecord, error) {
	k := c.key(ticker, market)
	if rec, ok := c.lookup(k); ok {
		return rec, nil
	}
	ch := c.group.DoChan(k, func() (any, error) {
		if rec, ok := c.lookup(k); ok {
			return rec, nil
		}
		rec, err := c.next.Generate(context.WithoutCancel(ctx), ticker, market)
		if err != nil {
			return nil, err
		}
		c.store(k, rec)
		return rec, nil
	})
	select {
	case <-ctx.Done():
		return types.ThesisRecord{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return types.ThesisRecord{}, res.Err
		}
		return res.Val.(types.ThesisRecord), nil
	}
}

func (c *CacheService) lookup(k string) (types.ThesisRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ent, ok := c.items[k]
	if !ok {
		return types.ThesisRecord{}, false
	}
	if c.now().Sub(ent.at) > c.ttl {
		// expired
		delete(c.items, k)
		c.removeFromOrderLocked(k)
		return types.ThesisRecord{}, false
	}
	c.touchLocked(k)
	return ent.rec, true
}

func (c *CacheService) store(k string, rec types.ThesisRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[k]; ok {
		c.removeFromOrderLocked(k)
	}
	c.items[k] = cacheEntry{at: c.now(), rec: rec}
	c.order = append(c.order, k)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
}

func (c *CacheService) touchLocked(k string) {
	c.removeFromOrderLocked(k)
	c.order = append(c.order, k)
}

func (c *CacheService) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
