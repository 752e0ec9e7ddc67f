package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// Ensure Cache implements the interfaces.
var (
	_ driven.StructureCache = (*Cache)(nil)
	_ driven.InterfaceCache = (*Cache)(nil)
)

// Cache memoises parsed structures and interface results for the life of
// the process. Entries are never evicted.
type Cache struct {
	mu         sync.RWMutex
	structures map[domain.ContentKey]*domain.Structure
	interfaces map[domain.InterfaceKey]domain.InterfaceResidueSet
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		structures: make(map[domain.ContentKey]*domain.Structure),
		interfaces: make(map[domain.InterfaceKey]domain.InterfaceResidueSet),
	}
}

// GetStructure returns a cached structure. Callers must not modify it.
func (c *Cache) GetStructure(key domain.ContentKey) (*domain.Structure, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.structures[key]
	return s, ok
}

// PutStructure stores a structure.
func (c *Cache) PutStructure(key domain.ContentKey, s *domain.Structure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structures[key] = s
}

// GetInterface returns a copy of a cached result.
func (c *Cache) GetInterface(_ context.Context, key domain.InterfaceKey) (domain.InterfaceResidueSet, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set, ok := c.interfaces[key]
	if !ok {
		return domain.InterfaceResidueSet{}, false, nil
	}
	return set.Clone(), true, nil
}

// PutInterface stores a copy of set.
func (c *Cache) PutInterface(_ context.Context, key domain.InterfaceKey, set domain.InterfaceResidueSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interfaces[key] = set.Clone()
	return nil
}

// Len returns the number of cached structures and interface results.
func (c *Cache) Len() (structures, interfaces int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.structures), len(c.interfaces)
}
