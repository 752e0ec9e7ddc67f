package driving

import "github.com/custodia-labs/binderdash/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDistance updates the default interface distance threshold.
	SetDistance(threshold float64) error

	// SetIndex updates the spatial index strategy.
	SetIndex(strategy domain.IndexStrategy) error

	// SetCache updates the interface cache backend and directory.
	SetCache(backend domain.CacheBackend, dir string) error

	// SetThresholdsPath points at a threshold table file.
	SetThresholdsPath(path string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
