package service

import (
	"strconv"
	"strings"
	"sync"

	"orderdesk/internal/model"
)

// LoadToken identifies one list fetch. Tokens are handed out in issue order.
type LoadToken uint64

// OrderCache holds the order summaries of the latest list fetch. It is
// replaced as a whole, never patched.
type OrderCache struct {
	mu      sync.RWMutex
	orders  []model.Order
	issued  LoadToken
	applied LoadToken
}

func NewOrderCache() *OrderCache {
	return &OrderCache{}
}

// ReplaceAll overwrites the cache unconditionally and supersedes every fetch
// issued so far. Later entries with an id already seen are dropped.
func (c *OrderCache) ReplaceAll(orders []model.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orders = dedupe(orders)
	c.applied = c.issued
}

// Begin reserves a token for a list fetch about to be issued.
func (c *OrderCache) Begin() LoadToken {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	return c.issued
}

// Commit applies the result of the fetch identified by token, unless a fetch
// issued after it has already been applied. It reports whether the cache
// changed hands.
func (c *OrderCache) Commit(token LoadToken, orders []model.Order) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token <= c.applied {
		return false
	}
	c.applied = token
	c.orders = dedupe(orders)
	return true
}

// Superseded reports whether a fetch issued after token has already been
// applied, in which case the outcome of token no longer matters.
func (c *OrderCache) Superseded(token LoadToken) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return token <= c.applied
}

// Snapshot returns a copy of the cached orders in cache order.
func (c *OrderCache) Snapshot() []model.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// ApplyFilters keeps the orders whose decimal userId contains owner and whose
// status equals status. An empty owner or status matches everything. The
// input is not modified and its order is kept.
func ApplyFilters(orders []model.Order, owner string, status model.Status) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if owner != "" && !strings.Contains(strconv.FormatInt(o.UserID, 10), owner) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func dedupe(orders []model.Order) []model.Order {
	seen := make(map[int64]struct{}, len(orders))
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.ID]; ok {
			continue
		}
		seen[o.ID] = struct{}{}
		out = append(out, o)
	}
	return out
}
