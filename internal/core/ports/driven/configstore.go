package driven

// ConfigStore provides read access to the srcdup manifest.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string

	// Exists reports whether the configuration file was found.
	Exists() bool

	// Files returns the file patterns listed in the manifest.
	Files() []string

	// Verbose reports whether the manifest enables verbose logging.
	Verbose() bool

	// Dir returns the directory that file patterns are relative to.
	Dir() string
}
