// Package config loads the engine's optional YAML tuning file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tunable parameters. Every field has a usable
// zero-config default so the engine runs correctly with no config file at
// all.
type Config struct {
	HashSizeMB    int    `yaml:"hash_size_mb"`
	BookPath      string `yaml:"book_path"`
	BookWeight    float64 `yaml:"book_weight"`
	LogPath       string `yaml:"log_path"`
	MaxThinkTimeMs int   `yaml:"max_think_time_ms"`
}

// Default returns the compiled-in defaults: 64 MB hash, no book, log to
// stderr, no think-time cap.
func Default() Config {
	return Config{
		HashSizeMB: 64,
		BookWeight: 0.5,
	}
}

// Load reads and parses a YAML config file at path, filling in defaults for
// any field the file leaves unset. A missing file is not an error: Default
// is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.HashSizeMB <= 0 {
		cfg.HashSizeMB = 64
	}
	return cfg, nil
}
