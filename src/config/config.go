package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	WsURL   string `yaml:"ws_url"`
}

type AuthConfig struct {
	BaseURL string `yaml:"base_url"`
}

type Config struct {
	Provider      ProviderConfig `yaml:"provider"`
	Auth          AuthConfig     `yaml:"auth"`
	DefaultSymbol string         `yaml:"default_symbol"`
	Watchlist     []string       `yaml:"watchlist"`
}

func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL: "https://api.polygon.io",
			WsURL:   "wss://socket.polygon.io/options",
		},
		Auth: AuthConfig{
			BaseURL: "",
		},
		DefaultSymbol: "SPY",
	}
}

// Load reads the yaml config at path, falling back to defaults when the
// file does not exist. Secrets (API keys) come from the environment, never
// from the file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Load: config file %s not found, using defaults", path)
			return cfg, nil
		}

		return nil, fmt.Errorf("Load: failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("Load: failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// APIKey returns the provider API key from the environment.
func APIKey() (string, error) {
	apiKey := os.Getenv("POLYGON_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("APIKey: missing POLYGON_API_KEY environment")
	}

	return apiKey, nil
}

// AuthAPIKey returns the hosted auth service key, empty when unset.
func AuthAPIKey() string {
	return os.Getenv("AUTH_API_KEY")
}
