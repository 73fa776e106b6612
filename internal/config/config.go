package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".foodcook"
	envPrefix  = "FC"
)

const (
	KeyAPIBaseURL         = "api.base_url"
	KeyAPITimeout         = "api.timeout"
	KeyAPIRateLimit       = "api.rate_limit"
	KeyAPIRateBurst       = "api.rate_burst"
	KeyPageSize           = "pagination.page_size"
	KeySearchLimit        = "pagination.search_limit"
	KeySessionProfilePath = "session.profile_path"
	KeySessionSecretsDir  = "session.secrets_dir"
	KeySessionBackend     = "session.secret_backend"
	KeyLogLevel           = "log.level"
)

const (
	BackendChain = "chain"
	BackendFile  = "file"
	BackendPass  = "pass"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

type PaginationConfig struct {
	PageSize    int `mapstructure:"page_size"`
	SearchLimit int `mapstructure:"search_limit"`
}

type SessionConfig struct {
	ProfilePath   string `mapstructure:"profile_path"`
	SecretsDir    string `mapstructure:"secrets_dir"`
	SecretBackend string `mapstructure:"secret_backend"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads ~/.foodcook/config.toml, or configFile when set, and applies FC_
// environment overrides on top of the defaults. A missing default config file
// is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, filepath.Join(homeDir, configDir))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Session.ProfilePath = expandHome(cfg.Session.ProfilePath, homeDir)
	cfg.Session.SecretsDir = expandHome(cfg.Session.SecretsDir, homeDir)
	cfg.Session.SecretBackend = strings.ToLower(strings.TrimSpace(cfg.Session.SecretBackend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyAPIBaseURL, "http://localhost:8080/api")
	v.SetDefault(KeyAPITimeout, "10s")
	v.SetDefault(KeyAPIRateLimit, 0)
	v.SetDefault(KeyAPIRateBurst, 1)
	v.SetDefault(KeyPageSize, 10)
	v.SetDefault(KeySearchLimit, 50)
	v.SetDefault(KeySessionProfilePath, filepath.Join(dir, "session.toml"))
	v.SetDefault(KeySessionSecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeySessionBackend, BackendChain)
	v.SetDefault(KeyLogLevel, "warn")
}

func (c Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute http(s) URL, got %q", KeyAPIBaseURL, c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyAPITimeout))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyAPIRateLimit))
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1 when rate limiting", KeyAPIRateBurst))
	}
	if c.Pagination.PageSize < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyPageSize))
	}
	if c.Pagination.SearchLimit < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeySearchLimit))
	}
	if c.Session.ProfilePath == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeySessionProfilePath))
	}
	switch c.Session.SecretBackend {
	case BackendChain, BackendFile, BackendPass:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of chain, file, pass; got %q", KeySessionBackend, c.Session.SecretBackend))
	}
	if c.Session.SecretBackend != BackendPass && c.Session.SecretsDir == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeySessionSecretsDir))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LogLevel is only meaningful on a validated Config.
func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

func expandHome(path string, homeDir string) string {
	switch {
	case path == "~":
		return homeDir
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(homeDir, path[2:])
	default:
		return path
	}
}
