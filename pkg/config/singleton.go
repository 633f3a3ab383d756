package config

import "sync"

// The active configuration is process-global. Commands install it once
// at startup through Initialize; tests swap it with SetConfig.
var global struct {
	mu   sync.RWMutex
	cfg  *Config
	once sync.Once
}

// Initialize loads the configuration from path, applies environment
// overrides, and installs the result. Only the first call does any
// work; later calls return nil without touching what is installed.
// Load and validation errors pass through unwrapped, so callers can
// test them with errors.Is.
func Initialize(path string) error {
	var initErr error

	global.once.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}
		install(cfg)
	})

	return initErr
}

// GetConfig returns the installed configuration, or nil before a
// successful Initialize or SetConfig.
func GetConfig() *Config {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.cfg
}

// SetConfig installs cfg directly, bypassing file loading. Command code
// uses it to fall back to built-in defaults when no config file exists;
// tests use it to inject fixtures.
func SetConfig(cfg *Config) {
	install(cfg)
}

func install(cfg *Config) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.cfg = cfg
}
