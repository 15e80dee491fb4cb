package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddress           = ":8080"
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
	defaultProviderType      = "github"
	defaultProviderBaseURL   = "https://api.github.com"
	defaultGitLabBaseURL     = "https://gitlab.com"
	defaultProviderTimeout   = 30 * time.Second
	defaultSessionTTL        = 8 * time.Hour
	defaultPurgeInterval     = 15 * time.Minute
	defaultCookieName        = "playground_session"
	defaultStoragePath       = "sqlplayground.db"
)

// Settings is the top-level configuration for the playground API.
type Settings struct {
	Server    ServerSettings    `yaml:"server"`
	Provider  ProviderSettings  `yaml:"provider"`
	Session   SessionSettings   `yaml:"session"`
	Storage   StorageSettings   `yaml:"storage"`
	Telemetry TelemetrySettings `yaml:"telemetry"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Address           string        `yaml:"address"             env:"SQLPLAYGROUND_ADDRESS"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SQLPLAYGROUND_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SQLPLAYGROUND_SHUTDOWN_TIMEOUT"`
}

// ProviderSettings describes the Git hosting provider API.
type ProviderSettings struct {
	Type    string        `yaml:"type"     env:"SQLPLAYGROUND_PROVIDER_TYPE"`
	BaseURL string        `yaml:"base_url" env:"SQLPLAYGROUND_PROVIDER_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"SQLPLAYGROUND_PROVIDER_TIMEOUT"`
}

// SessionSettings configures session issuance.
type SessionSettings struct {
	Secret       string        `yaml:"secret"        env:"SQLPLAYGROUND_SESSION_SECRET"`
	TTL          time.Duration `yaml:"ttl"           env:"SQLPLAYGROUND_SESSION_TTL"`
	CookieName   string        `yaml:"cookie_name"   env:"SQLPLAYGROUND_SESSION_COOKIE"`
	SecureCookie bool          `yaml:"secure_cookie" env:"SQLPLAYGROUND_SESSION_SECURE_COOKIE"`
	// PurgeInterval is how often expired sessions are deleted; zero disables the sweep.
	PurgeInterval time.Duration `yaml:"purge_interval" env:"SQLPLAYGROUND_SESSION_PURGE_INTERVAL"`
}

// StorageSettings points at the SQLite database file.
type StorageSettings struct {
	Path string `yaml:"path" env:"SQLPLAYGROUND_STORAGE_PATH"`
}

// TelemetrySettings configures OTLP trace export. Tracing is off without an endpoint.
type TelemetrySettings struct {
	Endpoint string `yaml:"endpoint" env:"SQLPLAYGROUND_OTEL_ENDPOINT"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			Address:           defaultAddress,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ShutdownTimeout:   defaultShutdownTimeout,
		},
		Provider: ProviderSettings{
			Type:    defaultProviderType,
			BaseURL: defaultProviderBaseURL,
			Timeout: defaultProviderTimeout,
		},
		Session: SessionSettings{
			TTL:           defaultSessionTTL,
			CookieName:    defaultCookieName,
			PurgeInterval: defaultPurgeInterval,
		},
		Storage: StorageSettings{Path: defaultStoragePath},
	}
}

// NewSettings loads the configuration: defaults, then the YAML file at path (if
// any) with ${ENV_VAR} references expanded, then environment overrides.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	// filled from provider.type once the file and environment are applied
	settings.Provider.BaseURL = ""

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal([]byte(expandEnv(string(data))), settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	settings.Provider.BaseURL = strings.TrimSuffix(strings.TrimSpace(settings.Provider.BaseURL), "/")
	if settings.Provider.BaseURL == "" {
		settings.Provider.BaseURL = DefaultProviderBaseURL(settings.Provider.Type)
	}
	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// DefaultProviderBaseURL returns the public API endpoint of a provider type, or
// an empty string when the type has no public default.
func DefaultProviderBaseURL(providerType string) string {
	switch providerType {
	case "github":
		return defaultProviderBaseURL
	case "gitlab":
		return defaultGitLabBaseURL
	default:
		return ""
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".sqlplayground.yaml",
		".sqlplayground.yml",
		"sqlplayground.yaml",
		"sqlplayground.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if s.Provider.Type == "" {
		return errors.New("provider.type is required")
	}
	if s.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if s.Provider.Type == "gitlab" && strings.TrimSuffix(s.Provider.BaseURL, "/") == defaultProviderBaseURL {
		return errors.New("provider.base_url points at GitHub while provider.type is gitlab")
	}
	if s.Provider.Timeout <= 0 {
		return errors.New("provider.timeout must be positive")
	}
	if s.Session.Secret == "" {
		return errors.New(
			"session.secret is required (set inline, via ${ENV_VAR}, or SQLPLAYGROUND_SESSION_SECRET)",
		)
	}
	if s.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if s.Session.PurgeInterval < 0 {
		return errors.New("session.purge_interval must not be negative")
	}
	if s.Session.CookieName == "" {
		return errors.New("session.cookie_name is required")
	}
	if s.Storage.Path == "" {
		return errors.New("storage.path is required")
	}
	return nil
}

// expandEnv replaces ${VAR} references with the variable's value.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
