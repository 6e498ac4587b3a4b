package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SAL_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 4998, cfg.Port)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, 4, cfg.ScanPageSize)
	assert.Equal(t, "default", cfg.Source("port"))
	assert.Equal(t, "0.0.0.0:4998", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SAL_CONFIG_PATH", dir)

	data := []byte("port: 8080\nworkers: 8\npushplus_token: tok-file\ndrive_uid: \"290001234\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "file", cfg.Source("port"))
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "tok-file", cfg.PushPlusToken)
	assert.Equal(t, "290001234", cfg.DriveUID)

	// Untouched attributes keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, "default", cfg.Source("bind_address"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SAL_CONFIG_PATH", dir)

	data := []byte("port: 8080\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o600))

	t.Setenv("SAL_PORT", "9090")
	t.Setenv("SAL_API_KEY", "sekrit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.Equal(t, "sekrit", cfg.APIKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SAL_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [oops"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "oversized scan page", mutate: func(c *Config) { c.ScanPageSize = 5 }, wantErr: true},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttributesMaskSecrets(t *testing.T) {
	cfg := newDefault()
	cfg.PushPlusToken = "dd1c8a0123456789"
	cfg.APIKey = "abc"

	for _, attr := range cfg.Attributes() {
		switch attr.Name {
		case "pushplus_token":
			assert.NotContains(t, attr.Value, "0123456789")
			assert.Equal(t, "dd", attr.Value[:2])
		case "api_key":
			assert.Equal(t, "****", attr.Value)
		}
	}
}
