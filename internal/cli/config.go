package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user configuration, read from a TOML file. Every field
// is optional; zero values fall back to built-in defaults.
type Config struct {
	// CacheDir overrides the XDG layout cache directory.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr switches the serve command's cache to Redis.
	RedisAddr string `toml:"redis_addr"`

	// ListenAddr is the serve command's default bind address.
	ListenAddr string `toml:"listen_addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: "localhost:8573",
	}
}

// LoadConfig reads the configuration file if present. A missing file is
// not an error; a malformed one is.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/xdot/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
