package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camreview/threads-affiliate/config"
)

func TestEnsureConfigExistsCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, config.EnsureConfigExists(path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Options.SaveLocation)
	assert.Equal(t, "http://localhost:8000", cfg.Converter.Endpoint)
	assert.Equal(t, ":8000", cfg.API.ListenAddr)

	// Second call must not clobber an existing file
	cfg.Account.TargetProfile = "https://www.threads.com/@someone"
	require.NoError(t, config.SaveConfig(path, cfg))
	require.NoError(t, config.EnsureConfigExists(path))

	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://www.threads.com/@someone", cfg.Account.TargetProfile)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[account]
target_profile = "https://www.threads.com/@someone"

[options]
save_location = "/tmp/threads-test"
`), 0644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/threads-test", "temp_media"), cfg.Options.TempMediaDir)
	assert.Equal(t, 120, cfg.Converter.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Schedule.IntervalMinutes)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[converter]
endpoint = "http://localhost:8000"
`), 0644))

	t.Setenv("CONVERTER_ENDPOINT", "http://bridge.internal:9000")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://bridge.internal:9000", cfg.Converter.Endpoint)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
