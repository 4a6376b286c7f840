package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"award-sync/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "award-sync.json", `{
		"upstream": {"base_url": "http://localhost:9000", "timeout_seconds": 5},
		"output": {"default_format": "json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Upstream.BaseURL)
	assert.Equal(t, 5, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, Default().Upstream.UserAgent, cfg.Upstream.UserAgent)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadHCLOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "award-sync.hcl", `
upstream {
  base_url        = "http://127.0.0.1:7000"
  timeout_seconds = 12
}

server {
  address         = ":9090"
  enable_cors     = false
  allowed_origins = ["https://example.com"]
}

logging {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:7000", cfg.Upstream.BaseURL)
	assert.Equal(t, 12, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.False(t, cfg.Server.EnableCORS)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json syntax", file: "bad.json", content: `{"upstream": `},
		{name: "hcl syntax", file: "bad.hcl", content: `upstream {`},
		{name: "relative base url", file: "rel.json", content: `{"upstream": {"base_url": "seats.aero"}}`},
		{name: "zero timeout", file: "timeout.json", content: `{"upstream": {"timeout_seconds": 0}}`},
		{name: "unknown format", file: "format.json", content: `{"output": {"default_format": "xml"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://mirror.internal")
	t.Setenv(EnvAddress, ":7777")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.internal", cfg.Upstream.BaseURL)
	assert.Equal(t, ":7777", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "award-sync.json")
	cfg := Default()
	cfg.Output.NoColor = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveHCLThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "award-sync.hcl")
	cfg := Default()
	cfg.Upstream.BaseURL = "http://localhost:9000"
	cfg.Server.AllowedOrigins = []string{"https://a.example", "https://b.example"}
	cfg.Logging.Development = true

	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "upstream {")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
