package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation ("interface.distance"). Implementations handle
// persistence and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetFloat returns 0 if key doesn't exist or isn't numeric.
	// Integers are converted.
	GetFloat(key string) float64

	// GetBool returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
