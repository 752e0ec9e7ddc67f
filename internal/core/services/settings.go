package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDistance       = "interface.distance"
	keyIndex          = "interface.index"
	keyCacheBackend   = "cache.backend"
	keyCacheDir       = "cache.dir"
	keyThresholdsPath = "thresholds.path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Invalid stored values fall
// back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Interface: domain.InterfaceSettings{
			DistanceThreshold: s.getDistance(defaults.Interface.DistanceThreshold),
			Index:             s.getIndex(defaults.Interface.Index),
		},
		Cache: domain.CacheSettings{
			Backend: s.getCacheBackend(defaults.Cache.Backend),
			Dir:     s.configStore.GetString(keyCacheDir),
		},
		Thresholds: domain.ThresholdSettings{
			Path: s.configStore.GetString(keyThresholdsPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateDistance(settings.Interface.DistanceThreshold); err != nil {
		return err
	}
	if !settings.Interface.Index.IsValid() {
		return fmt.Errorf("%w: index strategy %q", domain.ErrInvalidInput, settings.Interface.Index)
	}
	if !settings.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: cache backend %q", domain.ErrInvalidInput, settings.Cache.Backend)
	}

	if err := s.configStore.Set(keyDistance, settings.Interface.DistanceThreshold); err != nil {
		return fmt.Errorf("save distance: %w", err)
	}
	if err := s.configStore.Set(keyIndex, settings.Interface.Index.String()); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	if err := s.configStore.Set(keyCacheBackend, settings.Cache.Backend.String()); err != nil {
		return fmt.Errorf("save cache backend: %w", err)
	}
	if err := s.configStore.Set(keyCacheDir, settings.Cache.Dir); err != nil {
		return fmt.Errorf("save cache dir: %w", err)
	}
	if err := s.configStore.Set(keyThresholdsPath, settings.Thresholds.Path); err != nil {
		return fmt.Errorf("save thresholds path: %w", err)
	}

	return nil
}

// SetDistance updates the default interface distance threshold.
func (s *SettingsService) SetDistance(threshold float64) error {
	if err := validateDistance(threshold); err != nil {
		return err
	}
	return s.update(func(a *domain.AppSettings) {
		a.Interface.DistanceThreshold = threshold
	})
}

// SetIndex updates the spatial index strategy.
func (s *SettingsService) SetIndex(strategy domain.IndexStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("%w: index strategy %q", domain.ErrInvalidInput, strategy)
	}
	return s.update(func(a *domain.AppSettings) {
		a.Interface.Index = strategy
	})
}

// SetCache updates the cache backend and directory.
func (s *SettingsService) SetCache(backend domain.CacheBackend, dir string) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: cache backend %q", domain.ErrInvalidInput, backend)
	}
	return s.update(func(a *domain.AppSettings) {
		a.Cache.Backend = backend
		a.Cache.Dir = dir
	})
}

// SetThresholdsPath points at a threshold table. Empty restores the
// built-in table.
func (s *SettingsService) SetThresholdsPath(path string) error {
	return s.update(func(a *domain.AppSettings) {
		a.Thresholds.Path = path
	})
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(apply func(*domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return s.Save(settings)
}

func (s *SettingsService) getDistance(defaultVal float64) float64 {
	v := s.configStore.GetFloat(keyDistance)
	if validateDistance(v) != nil {
		return defaultVal
	}
	return v
}

func (s *SettingsService) getIndex(defaultVal domain.IndexStrategy) domain.IndexStrategy {
	v := domain.IndexStrategy(s.configStore.GetString(keyIndex))
	if v.IsValid() {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getCacheBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	v := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if v.IsValid() {
		return v
	}
	return defaultVal
}

// validateDistance bounds a default threshold to the slider range.
func validateDistance(v float64) error {
	if math.IsNaN(v) || v < domain.MinDistanceThreshold || v > domain.MaxDistanceThreshold {
		return fmt.Errorf("%w: distance %g outside [%g, %g]",
			domain.ErrInvalidInput, v, domain.MinDistanceThreshold, domain.MaxDistanceThreshold)
	}
	return nil
}
