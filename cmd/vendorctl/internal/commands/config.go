package commands

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config is the optional config file under the state directory. Flags and
// environment override it.
type Config struct {
	// Server is the backend API root, e.g. https://api.tajer.example/api
	Server string `yaml:"server"`

	// Timeout applies per request.
	Timeout time.Duration `yaml:"timeout"`

	// Cache enables disk caching of dashboard aggregates.
	Cache bool `yaml:"cache"`
}

// LoadConfig reads the config file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Timeout: 30 * time.Second, Cache: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return cfg, nil
}
