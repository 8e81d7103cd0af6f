package config

import (
	"errors"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/sig-0/pbrates/provider/privatbank"
)

const DefaultListenAddress = "0.0.0.0:8545"

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrInvalidBaseURL       = errors.New("invalid fetch base URL")
	ErrInvalidTimeout       = errors.New("invalid fetch timeout")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level service configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The upstream rates API configuration
	Fetch *Fetch `toml:"fetch"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`
}

// Fetch defines the upstream rates API configuration
type Fetch struct {
	// The archive rates endpoint, without the date query
	BaseURL string `toml:"base_url"`

	// The per-request timeout, as a Go duration (ex. "10s")
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns the parsed request timeout
func (f *Fetch) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(f.Timeout)
	if err != nil || d <= 0 {
		return 0, ErrInvalidTimeout
	}

	return d, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		CORSConfig:    DefaultCORSConfig(),
		Fetch:         DefaultFetchConfig(),
	}
}

// DefaultFetchConfig returns the default upstream API configuration
func DefaultFetchConfig() *Fetch {
	return &Fetch{
		BaseURL: privatbank.DefaultBaseURL,
		Timeout: privatbank.DefaultTimeout.String(),
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	if config.Fetch != nil {
		return ValidateFetchConfig(config.Fetch)
	}

	return nil
}

// ValidateFetchConfig validates the upstream API configuration
func ValidateFetchConfig(config *Fetch) error {
	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if _, err := config.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// Read reads the configuration from the given path.
// A missing listen address or fetch value falls back to its default
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in the unset listen address and fetch values
func applyDefaults(cfg *Config) {
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	defaults := DefaultFetchConfig()

	if cfg.Fetch == nil {
		cfg.Fetch = defaults

		return
	}

	if cfg.Fetch.BaseURL == "" {
		cfg.Fetch.BaseURL = defaults.BaseURL
	}

	if cfg.Fetch.Timeout == "" {
		cfg.Fetch.Timeout = defaults.Timeout
	}
}
