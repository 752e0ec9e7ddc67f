package driven

import "github.com/custodia-labs/binderdash/internal/core/domain"

// StructureParser converts raw structure text into an atomic model.
type StructureParser interface {
	// Parse reads the first model of data. It returns a *domain.ParseError
	// for malformed input or when neither chain A nor chain B is present.
	Parse(data []byte) (*domain.Structure, error)
}
