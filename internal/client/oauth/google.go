package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
)

const (
	DefaultGoogleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	DefaultGoogleTokenURL = "https://oauth2.googleapis.com/token"
	DefaultGoogleScope    = "openid email profile"
)

type GoogleConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	AuthURL      string `json:"auth_url"`
	TokenURL     string `json:"token_url"`
	Scope        string `json:"scope"`
}

// GoogleProvider exchanges the code with Google for an ID token, then
// trades the ID token for a backend access token.
type GoogleProvider struct {
	cfg        GoogleConfig
	api        Backend
	httpClient *http.Client
}

func NewGoogleProvider(cfg GoogleConfig, api Backend) *GoogleProvider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultGoogleAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultGoogleTokenURL
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultGoogleScope
	}
	return &GoogleProvider{
		cfg:        cfg,
		api:        api,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleTokenResponse struct {
	IDToken          string `json:"id_token"`
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p *GoogleProvider) Name() ProviderName { return Google }

func (p *GoogleProvider) StateKey() string { return localstore.KeyGoogleOAuthState }

func (p *GoogleProvider) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", p.cfg.Scope)
	q.Set("state", state)
	return p.cfg.AuthURL + "?" + q.Encode()
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (string, error) {
	idToken, err := p.idToken(ctx, code)
	if err != nil {
		return "", err
	}
	return backendExchange(ctx, p.api, PathGoogleAuth, map[string]string{"id_token": idToken})
}

func (p *GoogleProvider) idToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("redirect_uri", p.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderTokenExchange, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %w", ErrProviderTokenExchange, &client.HTTPError{Status: resp.StatusCode, Body: string(body)})
	}

	var tr googleTokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderTokenExchange, err)
	}
	if tr.Error != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrProviderTokenExchange, tr.Error, tr.ErrorDescription)
	}
	if tr.IDToken == "" {
		return "", fmt.Errorf("%w: response has no id_token", ErrProviderTokenExchange)
	}
	return tr.IDToken, nil
}
