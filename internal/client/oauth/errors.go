package oauth

import (
	"errors"
	"fmt"
)

var (
	ErrHandshakeRejected     = errors.New("oauth handshake rejected")
	ErrProviderDenied        = errors.New("provider denied sign-in")
	ErrUnknownProvider       = errors.New("unknown oauth provider")
	ErrProviderTokenExchange = errors.New("provider token exchange failed")
	ErrBackendExchange       = errors.New("backend token exchange failed")
	ErrNoAccessToken         = errors.New("no access token in response")
)

// ExchangeFailedError reports a failed code-for-token exchange. Status is
// the HTTP status that caused it, zero for transport or shape failures.
type ExchangeFailedError struct {
	Provider ProviderName
	Status   int
	Reason   string
	Err      error
}

func (e *ExchangeFailedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s sign-in failed (status %d): %s", e.Provider, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s sign-in failed: %s", e.Provider, e.Reason)
}

func (e *ExchangeFailedError) Unwrap() error {
	return e.Err
}
