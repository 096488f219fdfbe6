package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stoich.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, uint(64), cfg.Prec)
	assert.Equal(t, 2, cfg.Digits)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Weights)
	assert.Empty(t, cfg.overrides())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
prec: 128
digits: 4
log_level: debug
weights:
  - symbol: D
    weight: 2.014
  - symbol: Ca
    weight: 40.08
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint(128), cfg.Prec)
	assert.Equal(t, 4, cfg.Digits)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]float64{"D": 2.014, "Ca": 40.08}, cfg.overrides())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "prec: 128\n")
	t.Setenv("STOICH_PREC", "256")
	t.Setenv("STOICH_LOG_LEVEL", "error")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint(256), cfg.Prec)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"zero precision": "prec: 0\n",
		"log level":      "log_level: loud\n",
		"digits":         "digits: 99\n",
		"symbol":         "weights:\n  - symbol: ca\n    weight: 40\n",
		"weight":         "weights:\n  - symbol: Ca\n    weight: -40\n",
		"missing symbol": "weights:\n  - weight: 40\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, body))
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestLoadConfigZeroDigits(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "digits: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Digits)
}

func TestLoadConfigSetters(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "prec: 128\n"), func(c *config) { c.Prec = 256 }, func(c *config) { c.Digits = -1 })
	require.NoError(t, err)
	assert.Equal(t, uint(256), cfg.Prec)
	assert.Equal(t, -1, cfg.Digits)

	bad := map[string]func(*config){
		"huge precision":  func(c *config) { c.Prec = 100000 },
		"zero precision":  func(c *config) { c.Prec = 0 },
		"negative digits": func(c *config) { c.Digits = -7 },
	}
	for name, f := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig("", f)
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
