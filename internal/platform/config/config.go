package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Client captures everything needed to talk to the tender API.
type Client struct {
	BaseURL               string        `yaml:"base_url"`
	Timeout               time.Duration `yaml:"timeout"`
	LogLevel              string        `yaml:"log_level"`
	LogFormat             string        `yaml:"log_format"`
	CredentialsFile       string        `yaml:"credentials_file"`
	CredentialsPassphrase string        `yaml:"credentials_passphrase"`
}

// Defaults returns a config that works against a local gateway.
func Defaults() Client {
	return Client{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// FromEnv builds a Client config from environment variables so main stays lean.
// Unparseable values are ignored and the default is kept.
func FromEnv() Client {
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	return cfg
}

// Load reads a YAML config file, applies environment variable overrides,
// and validates the result. An empty path skips the file.
func Load(path string) (Client, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Client{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Client{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Client{}, fmt.Errorf("config: validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c Client) Validate() error {
	var errs []string

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, "base_url must be an absolute http(s) URL")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log_level must be one of debug, info, warn, error")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, "log_format must be json or console")
	}
	if c.CredentialsFile != "" && c.CredentialsPassphrase == "" {
		errs = append(errs, "credentials_passphrase is required with credentials_file")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// applyEnvOverrides reads TENDERAI_* environment variables.
func applyEnvOverrides(cfg *Client) {
	if v := strings.TrimSpace(os.Getenv("TENDERAI_API_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TENDERAI_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("TENDERAI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TENDERAI_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TENDERAI_CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv("TENDERAI_CREDENTIALS_PASSPHRASE"); v != "" {
		cfg.CredentialsPassphrase = v
	}
}
