package spatial

import (
	"fmt"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// NewBuilder returns the index builder for strategy.
func NewBuilder(strategy domain.IndexStrategy) (driven.IndexBuilder, error) {
	switch strategy {
	case domain.IndexGrid:
		return NewGrid(), nil
	case domain.IndexBruteForce:
		return NewBruteForce(), nil
	default:
		return nil, fmt.Errorf("%w: index strategy %q", domain.ErrInvalidInput, strategy)
	}
}
