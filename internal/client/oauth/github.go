package oauth

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
)

const DefaultGitHubAuthURL = "https://github.com/login/oauth/authorize"

type GitHubConfig struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
	AuthURL     string `json:"auth_url"`
	Scope       string `json:"scope"`
}

// GitHubProvider hands the code to the backend, which holds the client
// secret and talks to GitHub itself.
type GitHubProvider struct {
	cfg GitHubConfig
	api Backend
}

func NewGitHubProvider(cfg GitHubConfig, api Backend) *GitHubProvider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultGitHubAuthURL
	}
	if cfg.Scope == "" {
		cfg.Scope = "user:email"
	}
	return &GitHubProvider{cfg: cfg, api: api}
}

func (p *GitHubProvider) Name() ProviderName { return GitHub }

func (p *GitHubProvider) StateKey() string { return localstore.KeyGitHubOAuthState }

func (p *GitHubProvider) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", p.cfg.Scope)
	q.Set("state", state)
	return p.cfg.AuthURL + "?" + q.Encode()
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (string, error) {
	return backendExchange(ctx, p.api, PathGitHubAuth, map[string]string{"code": code})
}
