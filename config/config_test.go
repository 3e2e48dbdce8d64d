package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, "GROQ_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, Duration(30*time.Second), cfg.LLM.Timeout)
	assert.Equal(t, ":8765", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8765/sse", cfg.Server.URL)
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_LayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  model: llama-3.3-70b-versatile
  timeout: 45s
server:
  addr: ":9000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, Duration(45*time.Second), cfg.LLM.Timeout)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	// Untouched fields keep their defaults.
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "http://localhost:8765/sse", cfg.Server.URL)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  timeout: soon\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("TOOLBRIDGE_TEST_KEY", "env-key")

	literal := LLMConfig{APIKey: "literal-key", APIKeyEnv: "TOOLBRIDGE_TEST_KEY"}
	assert.Equal(t, "literal-key", literal.ResolveAPIKey())

	fromEnv := LLMConfig{APIKeyEnv: "TOOLBRIDGE_TEST_KEY"}
	assert.Equal(t, "env-key", fromEnv.ResolveAPIKey())

	t.Setenv("TOOLBRIDGE_TEST_KEY", "")
	assert.Empty(t, fromEnv.ResolveAPIKey())
	assert.Empty(t, LLMConfig{}.ResolveAPIKey())
}
