package domain

const unknownDescription = "Unknown"

// IndexStrategy selects the spatial index used by interface detection.
// Results are identical across strategies; only speed differs.
type IndexStrategy string

// Available index strategies.
const (
	// IndexGrid buckets atoms into cubic cells of the query radius.
	IndexGrid IndexStrategy = "grid"

	// IndexBruteForce compares every atom pair.
	IndexBruteForce IndexStrategy = "brute"
)

// IsValid returns true if the strategy is recognised.
func (s IndexStrategy) IsValid() bool {
	switch s {
	case IndexGrid, IndexBruteForce:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IndexStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s IndexStrategy) Description() string {
	switch s {
	case IndexGrid:
		return "Grid (uniform cell list)"
	case IndexBruteForce:
		return "Brute force (all atom pairs)"
	default:
		return unknownDescription
	}
}

// CacheBackend selects where interface results are memoised.
type CacheBackend string

// Available cache backends.
const (
	// CacheMemory keeps results for the life of the process.
	CacheMemory CacheBackend = "memory"

	// CacheSQLite keeps interface results in a SQLite file.
	CacheSQLite CacheBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	return b == CacheMemory || b == CacheSQLite
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheMemory:
		return "In-memory (session only)"
	case CacheSQLite:
		return "SQLite (interface results on disk)"
	default:
		return unknownDescription
	}
}

// InterfaceSettings holds interface detection defaults.
type InterfaceSettings struct {
	// DistanceThreshold is the initial contact distance in Ångström.
	DistanceThreshold float64

	// Index is the spatial index strategy.
	Index IndexStrategy
}

// CacheSettings holds memoisation configuration.
type CacheSettings struct {
	Backend CacheBackend

	// Dir is the directory holding the SQLite cache file.
	// Empty means ~/.binderdash/cache.
	Dir string
}

// ThresholdSettings locates the metric threshold table.
type ThresholdSettings struct {
	// Path to a JSON or TOML threshold file. Empty uses the built-in table.
	Path string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Interface  InterfaceSettings
	Cache      CacheSettings
	Thresholds ThresholdSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Interface: InterfaceSettings{
			DistanceThreshold: DefaultDistanceThreshold,
			Index:             IndexGrid,
		},
		Cache: CacheSettings{
			Backend: CacheMemory,
		},
	}
}

// AllIndexStrategies returns all available index strategies.
func AllIndexStrategies() []IndexStrategy {
	return []IndexStrategy{IndexGrid, IndexBruteForce}
}

// AllCacheBackends returns all available cache backends.
func AllCacheBackends() []CacheBackend {
	return []CacheBackend{CacheMemory, CacheSQLite}
}
