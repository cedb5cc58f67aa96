package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment override.
const envPrefix = "CWB_"

// WebConfig is the configuration of the web server (HTML page and REST API).
type WebConfig struct {
	Port         string           `yaml:"port" validate:"required,numeric"`
	AuditEnabled bool             `yaml:"audit_enabled"`
	Logger       LoggerSettings   `yaml:"logger"`
	Database     DatabaseSettings `yaml:"database"`
	Tracing      TracingSettings  `yaml:"tracing"`
	Session      SessionSettings  `yaml:"session"`
	Crypto       CryptoSettings   `yaml:"crypto"`
}

// CLIConfig is the configuration of the command-line tool.
type CLIConfig struct {
	Logger LoggerSettings `yaml:"logger"`
	Crypto CryptoSettings `yaml:"crypto"`
}

// DefaultCryptoSettings offers every supported RSA key size and
// enables the openssl fallback.
func DefaultCryptoSettings() CryptoSettings {
	return CryptoSettings{
		RSAKeySizes:    []int{1024, 2048, 3072, 4096},
		OpenSSLPath:    "openssl",
		NativeFallback: true,
	}
}

// DefaultWebConfig returns a configuration that runs without any external service.
func DefaultWebConfig() *WebConfig {
	return &WebConfig{
		Port:         "8080",
		AuditEnabled: true,
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Database: DatabaseSettings{
			Type: SqliteDbType,
		},
		Tracing: TracingSettings{
			ServiceName:  "crypto-workbench",
			SamplingRate: 1,
		},
		Session: SessionSettings{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: time.Minute,
			CookieName:    "cwb_session",
		},
		Crypto: DefaultCryptoSettings(),
	}
}

// DefaultCLIConfig returns the configuration used by the CLI when no file is given.
func DefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Crypto: DefaultCryptoSettings(),
	}
}

// Validate checks the server configuration and every nested settings block.
func (c *WebConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for WebConfig: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if c.AuditEnabled {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	return c.Crypto.Validate()
}

// Validate checks the CLI configuration.
func (c *CLIConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Crypto.Validate()
}

// InitializeWebConfig loads the web configuration. A missing file at path is not an
// error; defaults and environment overrides still apply.
func InitializeWebConfig(path string) (*WebConfig, error) {
	loadDotEnv(path)

	cfg := DefaultWebConfig()
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}

	if err := applyWebEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Logger.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// InitializeCLIConfig loads the CLI configuration the same way as InitializeWebConfig.
func InitializeCLIConfig(path string) (*CLIConfig, error) {
	loadDotEnv(path)

	cfg := DefaultCLIConfig()
	if err := readYAML(path, cfg); err != nil {
		return nil, err
	}

	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.Logger.LogLevel = v
	}
	if v, ok := lookupEnv("OPENSSL_PATH"); ok {
		cfg.Crypto.OpenSSLPath = v
	}
	cfg.Logger.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv reads .env next to the config file and in the working directory.
// Variables already present in the environment are not overwritten.
func loadDotEnv(configPath string) {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(configPath), ".env"))
	}
	for _, candidate := range candidates {
		_ = godotenv.Load(candidate)
	}
}

func readYAML(path string, out interface{}) error {
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyWebEnvOverrides(cfg *WebConfig) error {
	if v, ok := lookupEnv("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.Logger.LogLevel = v
	}
	if v, ok := lookupEnv("LOG_TYPE"); ok {
		cfg.Logger.LogType = v
	}
	if v, ok := lookupEnv("LOG_FILE_PATH"); ok {
		cfg.Logger.FilePath = v
	}
	if v, ok := lookupEnv("AUDIT_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUDIT_ENABLED: %w", envPrefix, err)
		}
		cfg.AuditEnabled = enabled
	}
	if v, ok := lookupEnv("DB_TYPE"); ok {
		cfg.Database.Type = v
	}
	if v, ok := lookupEnv("DB_DSN"); ok {
		cfg.Database.DSN = v
	}
	if v, ok := lookupEnv("DB_NAME"); ok {
		cfg.Database.Name = v
	}
	if v, ok := lookupEnv("OTEL_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sOTEL_ENABLED: %w", envPrefix, err)
		}
		cfg.Tracing.Enabled = enabled
	}
	if v, ok := lookupEnv("OTEL_ENDPOINT"); ok {
		cfg.Tracing.Endpoint = v
	}
	if v, ok := lookupEnv("SESSION_IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSESSION_IDLE_TIMEOUT: %w", envPrefix, err)
		}
		cfg.Session.IdleTimeout = d
	}
	if v, ok := lookupEnv("OPENSSL_PATH"); ok {
		cfg.Crypto.OpenSSLPath = v
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
