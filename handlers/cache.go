// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/danielhkuo/senate-recount/models"
)

// resultCache holds at most limit count results, dropping the oldest first.
// Lookups go straight to the map; only inserts take the lock.
type resultCache struct {
	entries *xsync.Map[string, *models.CountResult]

	mu    sync.Mutex
	order []string // insertion order, oldest first
	limit int
}

func newResultCache(limit int) *resultCache {
	return &resultCache{
		entries: xsync.NewMap[string, *models.CountResult](),
		limit:   limit,
	}
}

func (c *resultCache) Load(key string) (*models.CountResult, bool) {
	return c.entries.Load(key)
}

func (c *resultCache) Store(key string, result *models.CountResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, loaded := c.entries.LoadOrStore(key, result); loaded {
		return
	}
	c.order = append(c.order, key)
	for len(c.order) > c.limit {
		c.entries.Delete(c.order[0])
		c.order = c.order[1:]
	}
}

func (c *resultCache) Len() int {
	return c.entries.Size()
}
