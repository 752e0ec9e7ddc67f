package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/binderdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/binderdash/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("interface.distance", 5)
	_ = store.Set("interface.index", "brute")
	_ = store.Set("cache.backend", "sqlite")
	_ = store.Set("cache.dir", "/tmp/cache")
	_ = store.Set("thresholds.path", "thresholds.toml")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 5.0, settings.Interface.DistanceThreshold)
	assert.Equal(t, domain.IndexBruteForce, settings.Interface.Index)
	assert.Equal(t, domain.CacheSQLite, settings.Cache.Backend)
	assert.Equal(t, "/tmp/cache", settings.Cache.Dir)
	assert.Equal(t, "thresholds.toml", settings.Thresholds.Path)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("interface.distance", 42.0)
	_ = store.Set("interface.index", "kdtree")
	_ = store.Set("cache.backend", "redis")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDistanceThreshold, settings.Interface.DistanceThreshold)
	assert.Equal(t, domain.IndexGrid, settings.Interface.Index)
	assert.Equal(t, domain.CacheMemory, settings.Cache.Backend)
}

func TestSettingsService_Setters(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetDistance(4.5))
	require.NoError(t, service.SetIndex(domain.IndexBruteForce))
	require.NoError(t, service.SetCache(domain.CacheSQLite, "/var/cache/binderdash"))
	require.NoError(t, service.SetThresholdsPath("custom.json"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 4.5, settings.Interface.DistanceThreshold)
	assert.Equal(t, domain.IndexBruteForce, settings.Interface.Index)
	assert.Equal(t, domain.CacheSQLite, settings.Cache.Backend)
	assert.Equal(t, "/var/cache/binderdash", settings.Cache.Dir)
	assert.Equal(t, "custom.json", settings.Thresholds.Path)
	assert.Equal(t, "brute", store.GetString("interface.index"))
}

func TestSettingsService_SettersRejectInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetDistance(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetDistance(10.5), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetIndex("octree"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetCache("redis", ""), domain.ErrInvalidInput)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Save_Validates(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Interface.Index = "octree"
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
