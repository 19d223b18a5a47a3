package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sangkips/pos-terminal/internal/domain/entity"
)

type entry[T any] struct {
	items    []T
	loadedAt time.Time
}

// CatalogCache keeps the vendor and payment method lists of each terminal
// in memory. Lists older than the ttl are reloaded on the next read.
type CatalogCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	vendors map[string]entry[entity.Vendor]
	methods map[string]entry[entity.PaymentMethod]
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		ttl:     ttl,
		now:     time.Now,
		vendors: make(map[string]entry[entity.Vendor]),
		methods: make(map[string]entry[entity.PaymentMethod]),
	}
}

// Vendors returns the cached vendors of terminalID, calling load on a miss
func (c *CatalogCache) Vendors(ctx context.Context, terminalID string, load func(context.Context) ([]entity.Vendor, error)) ([]entity.Vendor, error) {
	return getOrLoad(ctx, c, c.vendors, terminalID, load)
}

func (c *CatalogCache) PaymentMethods(ctx context.Context, terminalID string, load func(context.Context) ([]entity.PaymentMethod, error)) ([]entity.PaymentMethod, error) {
	return getOrLoad(ctx, c, c.methods, terminalID, load)
}

// Vendor looks a vendor up in the cached list without loading
func (c *CatalogCache) Vendor(terminalID, vendorID string) (entity.Vendor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.vendors[terminalID].items {
		if v.ID == vendorID {
			return v, true
		}
	}
	return entity.Vendor{}, false
}

func (c *CatalogCache) PaymentMethod(terminalID, typeKey string) (entity.PaymentMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.methods[terminalID].items {
		if m.TypeKey == typeKey {
			return m, true
		}
	}
	return entity.PaymentMethod{}, false
}

// Invalidate drops everything cached for terminalID
func (c *CatalogCache) Invalidate(terminalID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.vendors, terminalID)
	delete(c.methods, terminalID)
}

func getOrLoad[T any](ctx context.Context, c *CatalogCache, m map[string]entry[T], terminalID string, load func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.RLock()
	e, ok := m[terminalID]
	c.mu.RUnlock()
	if ok && (c.ttl <= 0 || c.now().Sub(e.loadedAt) < c.ttl) {
		return e.items, nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	m[terminalID] = entry[T]{items: items, loadedAt: c.now()}
	c.mu.Unlock()
	log.Printf("Loaded %d catalog entries for terminal %s", len(items), terminalID)
	return items, nil
}
