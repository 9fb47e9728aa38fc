package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/meritrank/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Students)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, "direcciones.txt", cfg.Addresses)
	assert.Empty(t, cfg.Catalog)
	assert.Equal(t, int64(1000000), cfg.AccountBase)
	assert.Equal(t, "Ingenieria en Computacion", cfg.Program)
	assert.Equal(t, "es", cfg.Lang)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("students", 25)
	v.Set("seed", 42)
	v.Set("lang", "EN")
	v.Set("log-format", "JSON")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Students)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meritrank.yaml")
	content := "students: 10\naccount-base: 500\naddresses: /tmp/dirs.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Students)
	assert.Equal(t, int64(500), cfg.AccountBase)
	assert.Equal(t, "/tmp/dirs.txt", cfg.Addresses)
	assert.Equal(t, "es", cfg.Lang)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"negative students", "students", -1},
		{"zero account base", "account-base", 0},
		{"blank program", "program", "  "},
		{"unknown language", "lang", "ru"},
		{"unknown log level", "log-level", "trace"},
		{"unknown log format", "log-format", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.True(t, model.IsInvalidInput(err))
		})
	}
}
