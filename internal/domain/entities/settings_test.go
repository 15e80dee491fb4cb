//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sqlplayground.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Run("should load the file over the defaults", func(t *testing.T) {
		// given
		path := writeConfig(t, `
server:
  address: ":9090"
provider:
  base_url: "https://ghe.example.com/api/v3/"
  timeout: 10s
session:
  secret: "file-secret"
  ttl: 1h
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, ":9090", settings.Server.Address)
		assert.Equal(t, 5*time.Second, settings.Server.ShutdownTimeout)
		assert.Equal(t, "https://ghe.example.com/api/v3", settings.Provider.BaseURL)
		assert.Equal(t, 10*time.Second, settings.Provider.Timeout)
		assert.Equal(t, "file-secret", settings.Session.Secret)
		assert.Equal(t, time.Hour, settings.Session.TTL)
		assert.Equal(t, "playground_session", settings.Session.CookieName)
		assert.Equal(t, "sqlplayground.db", settings.Storage.Path)
		assert.Empty(t, settings.Telemetry.Endpoint)
	})

	t.Run("should expand environment placeholders", func(t *testing.T) {
		// given
		t.Setenv("PLAYGROUND_TEST_SECRET", "from-env")
		path := writeConfig(t, "session:\n  secret: \"${PLAYGROUND_TEST_SECRET}\"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-env", settings.Session.Secret)
	})

	t.Run("should let environment variables override the file", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "env-secret")
		t.Setenv("SQLPLAYGROUND_PROVIDER_TIMEOUT", "3s")
		t.Setenv("SQLPLAYGROUND_STORAGE_PATH", "/tmp/other.db")
		path := writeConfig(t, "session:\n  secret: \"file-secret\"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "env-secret", settings.Session.Secret)
		assert.Equal(t, 3*time.Second, settings.Provider.Timeout)
		assert.Equal(t, "/tmp/other.db", settings.Storage.Path)
	})

	t.Run("should load from the environment alone without a file", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "env-only")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com", settings.Provider.BaseURL)
		assert.Equal(t, 30*time.Second, settings.Provider.Timeout)
		assert.Equal(t, 8*time.Hour, settings.Session.TTL)
	})

	t.Run("should default the base URL from the provider type", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "env-only")
		path := writeConfig(t, "provider:\n  type: gitlab\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitlab", settings.Provider.Type)
		assert.Equal(t, "https://gitlab.com", settings.Provider.BaseURL)
	})

	t.Run("should keep an explicit base URL for gitlab", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "env-only")
		t.Setenv("SQLPLAYGROUND_PROVIDER_TYPE", "gitlab")
		t.Setenv("SQLPLAYGROUND_PROVIDER_BASE_URL", "https://gitlab.example.com/api/v4/")

		// when
		settings, err := entities.NewSettings("")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://gitlab.example.com/api/v4", settings.Provider.BaseURL)
	})

	t.Run("should require a base URL for a provider without a public default", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "env-only")
		t.Setenv("SQLPLAYGROUND_PROVIDER_TYPE", "gitea")

		// when
		_, err := entities.NewSettings("")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider.base_url")
	})

	t.Run("should require a session secret", func(t *testing.T) {
		// given
		t.Setenv("SQLPLAYGROUND_SESSION_SECRET", "")
		path := writeConfig(t, "server:\n  address: \":8080\"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "session.secret is required")
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})

	t.Run("should fail on malformed YAML", func(t *testing.T) {
		// given
		path := writeConfig(t, "server: [unterminated\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*entities.Settings)
		expected string
	}{
		{name: "address", mutate: func(s *entities.Settings) { s.Server.Address = "" }, expected: "server.address"},
		{name: "provider type", mutate: func(s *entities.Settings) { s.Provider.Type = "" }, expected: "provider.type"},
		{name: "timeout", mutate: func(s *entities.Settings) { s.Provider.Timeout = 0 }, expected: "provider.timeout"},
		{name: "ttl", mutate: func(s *entities.Settings) { s.Session.TTL = -time.Second }, expected: "session.ttl"},
		{name: "purge interval", mutate: func(s *entities.Settings) { s.Session.PurgeInterval = -time.Minute }, expected: "session.purge_interval"},
		{name: "storage", mutate: func(s *entities.Settings) { s.Storage.Path = "" }, expected: "storage.path"},
		{
			name:     "gitlab endpoint",
			mutate:   func(s *entities.Settings) { s.Provider.Type = "gitlab" },
			expected: "provider.base_url points at GitHub",
		},
	}

	for _, tt := range tests {
		t.Run("should reject a missing "+tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := entities.DefaultSettings()
			settings.Session.Secret = "secret"
			tt.mutate(settings)

			// when
			err := settings.Validate()

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}
