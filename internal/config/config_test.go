package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "seekmap.yaml")
	require.NoError(t, os.WriteFile(name, []byte(data), 0o644))
	return name
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	name := writeConfig(t, `
start: 1024
top: 20
format: json
verify: true
log_level: debug
`)

	cfg, err := Load(name)
	require.NoError(t, err)

	assert.Equal(t, uint64(1024), cfg.Start)
	assert.Equal(t, 20, cfg.Top)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Verify)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, Default().Workers, cfg.Workers, "unset keys keep their default")
	assert.Equal(t, uint64(DefaultMaxAddress), cfg.MaxAddress)
}

func TestMaxAddress(t *testing.T) {
	assert.NotZero(t, Default().MaxAddress)

	cfg, err := Load(writeConfig(t, "max_address: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.MaxAddress)

	cfg, err = Load(writeConfig(t, "max_address: 4294967296\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<32), cfg.MaxAddress)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "start: [1, 2\n"},
		{"negative-top", "top: -1\n"},
		{"no-workers", "workers: 0\n"},
		{"format", "format: xml\n"},
		{"log-level", "log_level: loud\n"},
		{"negative-start", "start: -5\n"},
		{"max-address", "max_address: 8589934592\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
