package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/bookup/internal/client/oauth"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the BookUp CLI.
type Config struct {
	BackendURL     string
	RequestTimeout time.Duration
	MaxPages       int

	DatabasePath string
	// StoragePassphrase, when set, encrypts local storage at rest.
	StoragePassphrase string

	LogLevel  string
	LogFormat string

	// LandingRoute is reported after an OAuth sign-in, LoginLanding after a
	// password login.
	LandingRoute string
	LoginLanding string
	CallbackAddr string

	Google oauth.GoogleConfig
	GitHub oauth.GitHubConfig
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.MaxPages = 100
	c.DatabasePath = "bookup.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LandingRoute = "/main"
	c.LoginLanding = "/books/list"
	c.CallbackAddr = "127.0.0.1:8085"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and args (normally os.Args[1:]), in that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	cfg.fillRedirects()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillRedirects points unset redirect URIs at the loopback callback server.
func (c *Config) fillRedirects() {
	base := "http://" + c.CallbackAddr
	if c.Google.RedirectURI == "" {
		c.Google.RedirectURI = base + "/google_auth"
	}
	if c.GitHub.RedirectURI == "" {
		c.GitHub.RedirectURI = base + "/github_auth"
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("%w: max pages must be positive", ErrInvalidConfig)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database path is empty", ErrInvalidConfig)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// OAuthEnabled reports whether the provider has a client id configured.
func (c *Config) OAuthEnabled(p oauth.ProviderName) bool {
	switch p {
	case oauth.Google:
		return c.Google.ClientID != ""
	case oauth.GitHub:
		return c.GitHub.ClientID != ""
	default:
		return false
	}
}
