package oauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/bookup/internal/logging"
	"github.com/dmitrijs2005/bookup/internal/shared"
)

// nonceSize is the number of random bytes in a state nonce.
const nonceSize = 32

// TokenStore receives the access token once a handshake succeeds.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Result is a successful sign-in.
type Result struct {
	Provider ProviderName
	Token    string
	Landing  string
}

type Handshake struct {
	mu        sync.Mutex
	states    map[ProviderName]State
	providers map[ProviderName]Provider

	repo    localstore.Repository
	tokens  TokenStore
	nav     Navigator
	landing string
	log     logging.Logger
}

// NewHandshake wires a handshake for the given providers. landing is the
// route reported in Result after a successful sign-in.
func NewHandshake(repo localstore.Repository, tokens TokenStore, nav Navigator, landing string, log logging.Logger, providers ...Provider) *Handshake {
	h := &Handshake{
		states:    make(map[ProviderName]State, len(providers)),
		providers: make(map[ProviderName]Provider, len(providers)),
		repo:      repo,
		tokens:    tokens,
		nav:       nav,
		landing:   landing,
		log:       log.With("component", "oauth"),
	}
	for _, p := range providers {
		h.providers[p.Name()] = p
		h.states[p.Name()] = Idle
	}
	return h
}

func (h *Handshake) provider(name ProviderName) (Provider, error) {
	p, ok := h.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

func (h *Handshake) setState(name ProviderName, s State) {
	h.mu.Lock()
	h.states[name] = s
	h.mu.Unlock()
}

// State reports where the provider's handshake currently is.
func (h *Handshake) State(name ProviderName) State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.states[name]
}

// Init starts a sign-in: a fresh nonce replaces any pending one, the
// current session is cleared and the user is sent to the provider. It
// returns the authorization URL.
func (h *Handshake) Init(ctx context.Context, name ProviderName) (string, error) {
	p, err := h.provider(name)
	if err != nil {
		return "", err
	}
	h.setState(name, Redirecting)

	nonce, err := shared.MakeRandHexString(nonceSize)
	if err != nil {
		h.setState(name, Idle)
		return "", fmt.Errorf("generate state: %w", err)
	}

	if err := h.repo.Set(ctx, p.StateKey(), []byte(nonce)); err != nil {
		h.setState(name, Idle)
		return "", fmt.Errorf("persist %s state: %w", name, err)
	}

	if err := h.tokens.Clear(ctx); err != nil {
		h.log.Warn(ctx, "failed to clear session", "provider", string(name), "error", err)
	}

	authURL := p.AuthorizationURL(nonce)
	if err := h.nav.Navigate(ctx, authURL); err != nil {
		h.setState(name, Idle)
		return "", fmt.Errorf("navigate to %s: %w", name, err)
	}

	h.setState(name, AwaitingCallback)
	h.log.Info(ctx, "oauth redirect issued", "provider", string(name))
	return authURL, nil
}

// Callback finishes a sign-in from the provider's redirect query. A missing
// code or state, a provider error or a state that does not match the
// stored nonce is rejected with ErrHandshakeRejected before anything is
// sent to the backend.
func (h *Handshake) Callback(ctx context.Context, name ProviderName, query url.Values) (*Result, error) {
	p, err := h.provider(name)
	if err != nil {
		return nil, err
	}
	h.setState(name, Validating)

	if err := h.validate(ctx, p, query); err != nil {
		h.setState(name, Rejected)
		h.log.Warn(ctx, "oauth callback rejected", "provider", string(name), "error", err)
		return nil, err
	}

	h.setState(name, Exchanging)
	if err := h.tokens.Clear(ctx); err != nil {
		h.log.Warn(ctx, "failed to clear session", "provider", string(name), "error", err)
	}

	token, err := p.Exchange(ctx, query.Get("code"))
	if err != nil {
		h.setState(name, ExchangeFailed)
		h.log.Error(ctx, "oauth exchange failed", "provider", string(name), "error", err)
		return nil, exchangeFailed(name, err)
	}
	// The store keeps the token in memory even when persisting it fails.
	if err := h.tokens.Set(ctx, token); err != nil {
		h.log.Warn(ctx, "token not persisted", "provider", string(name), "error", err)
	}

	h.setState(name, Authenticated)
	h.log.Info(ctx, "oauth sign-in complete", "provider", string(name))
	return &Result{Provider: name, Token: token, Landing: h.landing}, nil
}

// validate checks the callback against the pending nonce and consumes the
// nonce on a match. The check and the delete run under the lock so a
// replayed callback cannot pass twice.
func (h *Handshake) validate(ctx context.Context, p Provider, query url.Values) error {
	if e := query.Get("error"); e != "" {
		return fmt.Errorf("%w: %w: %s", ErrHandshakeRejected, ErrProviderDenied, e)
	}

	code, state := query.Get("code"), query.Get("state")
	if code == "" || state == "" {
		return fmt.Errorf("%w: missing code or state", ErrHandshakeRejected)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	stored, err := h.repo.Get(ctx, p.StateKey())
	if err != nil {
		return fmt.Errorf("%w: read stored state: %w", ErrHandshakeRejected, err)
	}
	if len(stored) == 0 || subtle.ConstantTimeCompare(stored, []byte(state)) != 1 {
		return fmt.Errorf("%w: state mismatch", ErrHandshakeRejected)
	}

	if err := h.repo.Delete(ctx, p.StateKey()); err != nil {
		return fmt.Errorf("%w: consume stored state: %w", ErrHandshakeRejected, err)
	}
	return nil
}

func exchangeFailed(name ProviderName, err error) *ExchangeFailedError {
	e := &ExchangeFailedError{Provider: name, Reason: err.Error(), Err: err}

	var he *client.HTTPError
	if errors.As(err, &he) {
		e.Status = he.Status
		if detail := detailOf(he.Body); detail != "" {
			e.Reason = detail
		}
	}
	return e
}
