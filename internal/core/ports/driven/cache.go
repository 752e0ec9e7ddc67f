package driven

import (
	"context"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// StructureCache memoises parsed structures by content.
// Entries are never evicted.
type StructureCache interface {
	GetStructure(key domain.ContentKey) (*domain.Structure, bool)
	PutStructure(key domain.ContentKey, s *domain.Structure)
}

// InterfaceCache memoises interface detection results by structure content
// and distance threshold. Entries are never evicted.
type InterfaceCache interface {
	// GetInterface returns the cached result and whether it was present.
	GetInterface(ctx context.Context, key domain.InterfaceKey) (domain.InterfaceResidueSet, bool, error)

	// PutInterface stores a result.
	PutInterface(ctx context.Context, key domain.InterfaceKey, set domain.InterfaceResidueSet) error
}
