package driven

import "github.com/custodia-labs/binderdash/internal/core/domain"

// ThresholdSource provides the metric threshold table.
// It is read once at startup.
type ThresholdSource interface {
	// Load returns the catalog or a *domain.ConfigError.
	Load() (domain.ThresholdCatalog, error)

	// Location describes where the table came from, for display.
	Location() string
}
