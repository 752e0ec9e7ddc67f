package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/binderdash/internal/core/domain"
)

// StructureService loads structures.
type StructureService interface {
	// Load parses in, reusing a cached model for identical bytes.
	Load(ctx context.Context, in domain.StructureInput) (*domain.Structure, error)
}

// InterfaceService detects interface residues between chains A and B.
type InterfaceService interface {
	// Find loads in (cached) and detects its interface (cached by content
	// and threshold).
	Find(ctx context.Context, in domain.StructureInput, threshold float64) (domain.InterfaceResidueSet, error)

	// Detect runs detection on an already loaded structure, uncached.
	Detect(s *domain.Structure, threshold float64) (domain.InterfaceResidueSet, error)

	// Table returns the aligned display rows for a result.
	Table(set domain.InterfaceResidueSet) iter.Seq[domain.ResidueRow]
}
