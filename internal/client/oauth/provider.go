package oauth

import (
	"context"

	"github.com/dmitrijs2005/bookup/internal/client/client"
)

// Provider is one external identity provider.
type Provider interface {
	Name() ProviderName
	// StateKey is the local storage key holding the pending nonce.
	StateKey() string
	AuthorizationURL(state string) string
	// Exchange trades an authorization code for a backend access token.
	Exchange(ctx context.Context, code string) (string, error)
}

// Backend is the part of the API client the providers need.
type Backend interface {
	Post(ctx context.Context, path string, body any) (*client.Response, error)
}

const (
	PathGoogleAuth = "/api/auth/google-auth/"
	PathGitHubAuth = "/api/auth/github-auth/"
)
