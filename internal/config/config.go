package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "https://api.thecatapi.com/v1"
	DefaultEnvFile = ".env"

	CassetteOff    = "off"
	CassetteRecord = "record"
	CassetteReplay = "replay"
)

// Config holds the harness configuration loaded from the environment and an optional .env file.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL     string `mapstructure:"cat_url"`
	APIKey      string `mapstructure:"cat_api_key"`
	TestDataDir string `mapstructure:"test_data_dir"`
	UploadImage string `mapstructure:"upload_image"`
	UploadSubID string `mapstructure:"upload_sub_id"`

	SuitesFile            string        `mapstructure:"suites_file"`
	PublishersFile        string        `mapstructure:"publishers_file"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	CassetteMode string `mapstructure:"cassette_mode"`
	CassettePath string `mapstructure:"cassette_path"`

	// EnvFile is the dotenv path that was attempted; EnvFileLoaded reports whether it existed.
	EnvFile       string `mapstructure:"-"`
	EnvFileLoaded bool   `mapstructure:"-"`
}

// Load reads configuration from the default .env file (or CAT_ENV_FILE) and the environment.
func Load() (*Config, error) {
	envFile := strings.TrimSpace(os.Getenv("CAT_ENV_FILE"))
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	return LoadFrom(envFile)
}

// LoadFrom reads configuration using the given dotenv file. A missing file is not an error.
func LoadFrom(envFile string) (*Config, error) {
	loaded := false
	if envFile != "" {
		loaded = godotenv.Load(envFile) == nil
	}

	v := viper.New()

	v.SetDefault("app_name", "catapi-contract")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("cat_url", DefaultBaseURL)
	v.SetDefault("cat_api_key", "")
	v.SetDefault("test_data_dir", "")
	v.SetDefault("upload_image", "")
	v.SetDefault("upload_sub_id", "catapi-contract")
	v.SetDefault("suites_file", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("request_timeout_seconds", 0)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/uploads.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("cassette_mode", CassetteOff)
	v.SetDefault("cassette_path", "./testdata/cassette.json")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.EnvFile = envFile
	cfg.EnvFileLoaded = loaded

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	cfg.BaseURL = baseURL
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.UploadImage = strings.TrimSpace(cfg.UploadImage)

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must not be negative)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	cfg.CassetteMode = strings.ToLower(strings.TrimSpace(cfg.CassetteMode))
	switch cfg.CassetteMode {
	case "", CassetteOff:
		cfg.CassetteMode = CassetteOff
	case CassetteRecord, CassetteReplay:
		if strings.TrimSpace(cfg.CassettePath) == "" {
			return nil, fmt.Errorf("cassette_path is required for cassette_mode %q", cfg.CassetteMode)
		}
	default:
		return nil, fmt.Errorf("invalid cassette_mode %q (expected off, record or replay)", cfg.CassetteMode)
	}

	return &cfg, nil
}

// HasAPIKey reports whether an API key was configured.
func (c *Config) HasAPIKey() bool {
	return c != nil && c.APIKey != ""
}

// Redacted returns a copy that is safe to log.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	return c
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("cat_url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid cat_url: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("cat_url missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("cat_url missing host")
	}
	return strings.TrimSuffix(trimmed, "/"), nil
}
