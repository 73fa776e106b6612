package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 50, cfg.Pagination.SearchLimit)
	assert.Equal(t, filepath.Join(home, ".foodcook", "session.toml"), cfg.Session.ProfilePath)
	assert.Equal(t, filepath.Join(home, ".foodcook", "secrets"), cfg.Session.SecretsDir)
	assert.Equal(t, BackendChain, cfg.Session.SecretBackend)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel())
}

func TestLoadReadsConfigFileFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".foodcook")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[api]
base_url = "https://food.example.com/api"
timeout = "3s"
rate_limit = 5
rate_burst = 2

[pagination]
page_size = 20

[session]
profile_path = "~/state/session.toml"
secret_backend = "FILE"

[log]
level = "debug"
`), 0o600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://food.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5.0, cfg.API.RateLimit)
	assert.Equal(t, 2, cfg.API.RateBurst)
	assert.Equal(t, 20, cfg.Pagination.PageSize)
	assert.Equal(t, 50, cfg.Pagination.SearchLimit)
	assert.Equal(t, filepath.Join(home, "state", "session.toml"), cfg.Session.ProfilePath)
	assert.Equal(t, BackendFile, cfg.Session.SecretBackend)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FC_API_BASE_URL", "http://127.0.0.1:9999/api")
	t.Setenv("FC_PAGINATION_PAGE_SIZE", "5")
	t.Setenv("FC_SESSION_SECRET_BACKEND", "file")

	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"https://ignored.example.com\"\n"), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.Pagination.PageSize)
	assert.Equal(t, BackendFile, cfg.Session.SecretBackend)
}

func TestLoadExplicitMissingFileIsAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "base url", env: map[string]string{"FC_API_BASE_URL": "localhost:8080"}, want: "api.base_url"},
		{name: "page size", env: map[string]string{"FC_PAGINATION_PAGE_SIZE": "0"}, want: "pagination.page_size"},
		{name: "search limit", env: map[string]string{"FC_PAGINATION_SEARCH_LIMIT": "-1"}, want: "pagination.search_limit"},
		{name: "backend", env: map[string]string{"FC_SESSION_SECRET_BACKEND": "keyring"}, want: "session.secret_backend"},
		{name: "log level", env: map[string]string{"FC_LOG_LEVEL": "loud"}, want: "log.level"},
		{name: "timeout", env: map[string]string{"FC_API_TIMEOUT": "0s"}, want: "api.timeout"},
		{name: "burst", env: map[string]string{"FC_API_RATE_LIMIT": "2", "FC_API_RATE_BURST": "0"}, want: "api.rate_burst"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New(), "")
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
