// Package config holds the demo configuration: oracle endpoint and
// credential, server address and transport. A Config is constructed
// once at startup and passed into every component that needs it; there
// is no ambient global state.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LLMConfig configures the completion oracle endpoint.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// APIKey wins over APIKeyEnv when both are set.
	APIKey      string   `yaml:"api_key"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	Temperature float64  `yaml:"temperature"`
	Timeout     Duration `yaml:"timeout"`
}

// ServerConfig configures the demo MCP server and the URL clients use
// to reach it.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	Transport string `yaml:"transport"`
	URL       string `yaml:"url"`
}

// Config is the root configuration.
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the configuration the demos ship with.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.1-8b-instant",
			APIKeyEnv:   "GROQ_API_KEY",
			Temperature: 0.1,
			Timeout:     Duration(30 * time.Second),
		},
		Server: ServerConfig{
			Addr:      ":8765",
			Transport: "sse",
			URL:       "http://localhost:8765/sse",
		},
	}
}

// Load reads the YAML config at path, layered over Default. An empty
// path or a missing file yields the defaults.
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
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ResolveAPIKey returns the configured credential, consulting the
// environment when no literal key is set. Empty means degraded
// (fallback) mode.
func (c LLMConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}
