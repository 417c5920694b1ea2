package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	// No config file, no env: built-in defaults survive validation.
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, DefaultRatePages, cfg.Scrape.Pages)
	assert.Equal(t, 30*time.Second, cfg.Scrape.RequestTimeout)
	assert.Equal(t, "data", cfg.Data.Dir)
}

func TestLoadFromYAMLOverlay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
logging:
  level: debug
scrape:
  pages:
    - https://listing.example.org/current
data:
  dir: /var/lib/rfrcli
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://listing.example.org/current"}, cfg.Scrape.Pages)
	assert.Equal(t, "/var/lib/rfrcli", cfg.Data.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadFromEnvWinsOverYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("RFR_SERVER_PORT", "7070")
	t.Setenv("RFR_LOGGING_LEVEL", "warn")

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"RFR_SERVER_PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"RFR_LOGGING_LEVEL": "verbose"}},
		{name: "unknown log output", env: map[string]string{"RFR_LOGGING_OUTPUT": "syslog"}},
		{name: "non-url page", env: map[string]string{"RFR_SCRAPE_PAGES": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server: [not a map"), 0o644))

	_, err := LoadFrom(file)
	assert.Error(t, err)
}

func TestPathsFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = "/var/lib/rfrcli"

	paths := cfg.Paths()
	assert.Equal(t, "/var/lib/rfrcli", paths.BaseDir)
	assert.Equal(t, filepath.Join("/var/lib/rfrcli", DownloadDirName), paths.DownloadDir)
}
