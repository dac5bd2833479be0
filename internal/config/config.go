package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// MaxUploadBytes bounds the size of a single uploaded report body.
	// The engine itself places no limit on input size; this is the host's.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"min=1024"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ExportsDir string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"data/exports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// configFile is the optional YAML overlay next to the executable
const configFile = "appsales.yaml"

// Load loads configuration from environment variables and config file.
// Environment values take precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("APPSALES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envSet reports whether the variable is present in the environment,
// regardless of its value.
func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// mergeConfigs layers the file config between envconfig defaults and
// explicitly set environment variables: env wins, then file, then defaults.
// The overlay must check env presence, not zero values - envconfig fills
// default-tagged fields even when the variable is absent, so a zero test
// cannot tell "defaulted" apart from "set".
//
// RateLimit.Enabled cannot be overlaid from the file: a yaml false is
// indistinguishable from unset.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Server.Port != 0 && !envSet("APPSALES_SERVER_PORT") {
		merged.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 && !envSet("APPSALES_SERVER_READ_TIMEOUT") {
		merged.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 && !envSet("APPSALES_SERVER_WRITE_TIMEOUT") {
		merged.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if fileConfig.Server.IdleTimeout != 0 && !envSet("APPSALES_SERVER_IDLE_TIMEOUT") {
		merged.Server.IdleTimeout = fileConfig.Server.IdleTimeout
	}
	if fileConfig.Server.ShutdownTimeout != 0 && !envSet("APPSALES_SERVER_SHUTDOWN_TIMEOUT") {
		merged.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}
	if fileConfig.Server.MaxUploadBytes != 0 && !envSet("APPSALES_SERVER_MAX_UPLOAD_BYTES") {
		merged.Server.MaxUploadBytes = fileConfig.Server.MaxUploadBytes
	}
	if fileConfig.Security.RateLimit.RPS != 0 && !envSet("APPSALES_SECURITY_RATE_LIMIT_RPS") {
		merged.Security.RateLimit.RPS = fileConfig.Security.RateLimit.RPS
	}
	if fileConfig.Security.RateLimit.Burst != 0 && !envSet("APPSALES_SECURITY_RATE_LIMIT_BURST") {
		merged.Security.RateLimit.Burst = fileConfig.Security.RateLimit.Burst
	}
	if fileConfig.Logging.Level != "" && !envSet("APPSALES_LOGGING_LEVEL") {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && !envSet("APPSALES_LOGGING_OUTPUT") {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && !envSet("APPSALES_LOGGING_FILE_PATH") {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" && !envSet("APPSALES_PATHS_DATA_DIR") {
		merged.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.ExportsDir != "" && !envSet("APPSALES_PATHS_EXPORTS_DIR") {
		merged.Paths.ExportsDir = fileConfig.Paths.ExportsDir
	}
	if fileConfig.Paths.LogsDir != "" && !envSet("APPSALES_PATHS_LOGS_DIR") {
		merged.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	return merged
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
