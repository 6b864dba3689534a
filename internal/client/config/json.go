package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/flagx"
	"github.com/dmitrijs2005/bookup/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration so "15s" and integer nanoseconds both parse.
type JsonConfig struct {
	BackendURL     string             `json:"backend_url"`
	RequestTimeout timex.Duration     `json:"request_timeout"`
	MaxPages       int                `json:"max_pages"`
	DatabasePath   string             `json:"database_path"`
	LogLevel       string             `json:"log_level"`
	LogFormat      string             `json:"log_format"`
	LandingRoute   string             `json:"landing_route"`
	LoginLanding   string             `json:"login_landing"`
	CallbackAddr   string             `json:"callback_addr"`
	Google         oauth.GoogleConfig `json:"google"`
	GitHub         oauth.GitHubConfig `json:"github"`
}

// parseJSON overlays cfg with the non-empty values of the JSON file named
// by -c/-config or $BOOKUP_CONFIG. No file means nothing to do.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.BackendURL, jc.BackendURL)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxPages > 0 {
		cfg.MaxPages = jc.MaxPages
	}
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LandingRoute, jc.LandingRoute)
	setString(&cfg.LoginLanding, jc.LoginLanding)
	setString(&cfg.CallbackAddr, jc.CallbackAddr)

	setString(&cfg.Google.ClientID, jc.Google.ClientID)
	setString(&cfg.Google.ClientSecret, jc.Google.ClientSecret)
	setString(&cfg.Google.RedirectURI, jc.Google.RedirectURI)
	setString(&cfg.Google.AuthURL, jc.Google.AuthURL)
	setString(&cfg.Google.TokenURL, jc.Google.TokenURL)
	setString(&cfg.Google.Scope, jc.Google.Scope)

	setString(&cfg.GitHub.ClientID, jc.GitHub.ClientID)
	setString(&cfg.GitHub.RedirectURI, jc.GitHub.RedirectURI)
	setString(&cfg.GitHub.AuthURL, jc.GitHub.AuthURL)
	setString(&cfg.GitHub.Scope, jc.GitHub.Scope)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
