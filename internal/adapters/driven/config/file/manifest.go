package file

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
)

// Ensure Manifest implements the interface.
var _ driven.ConfigStore = (*Manifest)(nil)

// DefaultManifestName is the manifest file looked up when none is given.
const DefaultManifestName = ".srcdup.toml"

// Manifest keys.
const (
	KeyFiles   = "files"
	KeyVerbose = "verbose"
)

// Manifest is a read-only TOML configuration store.
//
//	verbose = true
//	files = ["src/Delegate/DelegateAsync.h", "src/**/*Wait.h"]
type Manifest struct {
	mu       sync.RWMutex
	fs       afero.Fs
	filePath string
	data     map[string]any
}

// NewManifest creates a manifest store for path and loads it.
// If path names a directory, DefaultManifestName inside it is used.
// A missing manifest is not an error; the store is simply empty.
func NewManifest(fsys afero.Fs, path string) (*Manifest, error) {
	if path == "" {
		path = DefaultManifestName
	}
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultManifestName)
	}

	m := &Manifest{
		fs:       fsys,
		filePath: path,
		data:     make(map[string]any),
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Get retrieves a configuration value by key.
func (m *Manifest) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	return val, ok
}

// GetBool retrieves a boolean configuration value.
func (m *Manifest) GetBool(key string) bool {
	val, ok := m.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (m *Manifest) GetStringSlice(key string) []string {
	val, ok := m.Get(key)
	if !ok {
		return nil
	}

	// TOML arrays are parsed as []any
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Files returns the file patterns listed in the manifest.
func (m *Manifest) Files() []string {
	return m.GetStringSlice(KeyFiles)
}

// Verbose reports whether the manifest enables verbose logging.
func (m *Manifest) Verbose() bool {
	return m.GetBool(KeyVerbose)
}

// Exists reports whether the manifest was found on disk.
func (m *Manifest) Exists() bool {
	_, err := m.fs.Stat(m.filePath)
	return err == nil
}

// Load reads the manifest from disk.
func (m *Manifest) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := afero.ReadFile(m.fs, m.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded == nil {
		loaded = make(map[string]any)
	}

	m.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(src map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range src {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return m.filePath
}

// Dir returns the directory manifest patterns are relative to.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.filePath)
}
