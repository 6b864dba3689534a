package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/client/tokens"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrOAuthDisabled = errors.New("oauth sign-in is not configured")
)

// registerFields are the only keys a registration 400 body may carry.
var registerFields = []string{"email", "password", "re_password", "username", "first_name", "last_name"}

// LoginError is a refused login; Detail is the backend's message.
type LoginError struct {
	Status int
	Detail string
}

func (e *LoginError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("login failed (status %d)", e.Status)
	}
	return "login failed: " + e.Detail
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
}

type VerifyResult int

const (
	Verified VerifyResult = iota
	AlreadyVerified
	InvalidCode
)

func (v VerifyResult) String() string {
	switch v {
	case Verified:
		return "verified"
	case AlreadyVerified:
		return "already verified"
	case InvalidCode:
		return "invalid code"
	default:
		return fmt.Sprintf("VerifyResult(%d)", int(v))
	}
}

// TokenStore is the session token holder.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// OAuthFlow starts a provider redirect and waits for its callback.
type OAuthFlow interface {
	Init(ctx context.Context, name oauth.ProviderName) (string, error)
	Wait(ctx context.Context, name oauth.ProviderName) (*oauth.Result, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange e-mail and password for a session token.
//   - Register: create an account; the backend e-mails a one-time code.
//   - VerifyEmail / ResendEmail: confirm the account with that code.
//   - OAuthLogin: sign in through Google or GitHub.
//   - Logout: drop the session token.
//   - WhoAmI: describe the current token.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req RegisterRequest) error
	VerifyEmail(ctx context.Context, email, otp string) (VerifyResult, error)
	ResendEmail(ctx context.Context, email string) error
	OAuthLogin(ctx context.Context, provider oauth.ProviderName) (*oauth.Result, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*tokens.Claims, error)
}

type authService struct {
	api    *client.Client
	tokens TokenStore
	oauth  OAuthFlow
	log    logging.Logger
}

// NewAuthService builds an AuthService. flow may be nil, in which case
// OAuthLogin returns ErrOAuthDisabled.
func NewAuthService(api *client.Client, store TokenStore, flow OAuthFlow, log logging.Logger) AuthService {
	return &authService{api: api, tokens: store, oauth: flow, log: log.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	resp, err := a.api.Post(ctx, pathLogin, map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	if !resp.OK() {
		var body struct {
			Detail string `json:"detail"`
		}
		if err := resp.DecodeJSON(&body); err != nil {
			return &LoginError{Status: resp.StatusCode, Detail: resp.Text()}
		}
		return &LoginError{Status: resp.StatusCode, Detail: body.Detail}
	}

	token, err := oauth.AccessToken(resp)
	if err != nil {
		return err
	}
	if err := a.tokens.Set(ctx, token); err != nil {
		a.log.Warn(ctx, "session kept in memory only", "error", err)
	}
	a.log.Info(ctx, "logged in")
	return nil
}

// Register creates an account. A 400 answer is returned as
// *client.ValidationError keyed by form field.
func (a *authService) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := a.api.Post(ctx, pathRegister, req)
	if err != nil {
		return err
	}
	if resp.OK() {
		return nil
	}
	if resp.StatusCode != http.StatusBadRequest {
		return resp.Err()
	}

	verr, err := resp.ValidationErrors(registerFields...)
	if err != nil {
		return err
	}
	return verr
}

func (a *authService) VerifyEmail(ctx context.Context, email, otp string) (VerifyResult, error) {
	resp, err := a.api.Post(ctx, pathVerifyUser, map[string]string{"email": email, "otp": otp})
	if err != nil {
		return 0, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return Verified, nil
	case http.StatusAlreadyReported:
		return AlreadyVerified, nil
	case http.StatusNotFound:
		return InvalidCode, nil
	default:
		return 0, &client.HTTPError{Status: resp.StatusCode, Body: resp.Text()}
	}
}

func (a *authService) ResendEmail(ctx context.Context, email string) error {
	resp, err := a.api.Post(ctx, pathResendEmail, map[string]string{"email": email})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &client.HTTPError{Status: resp.StatusCode, Body: resp.Text()}
	}
	return nil
}

func (a *authService) OAuthLogin(ctx context.Context, provider oauth.ProviderName) (*oauth.Result, error) {
	if a.oauth == nil {
		return nil, ErrOAuthDisabled
	}
	if _, err := a.oauth.Init(ctx, provider); err != nil {
		return nil, err
	}
	return a.oauth.Wait(ctx, provider)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) (*tokens.Claims, error) {
	token, ok := a.tokens.Get(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return tokens.Inspect(token)
}
