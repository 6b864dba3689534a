package oauth

import (
	"fmt"
	"strings"
)

type State int

const (
	Idle State = iota
	Redirecting
	AwaitingCallback
	Validating
	Exchanging
	Authenticated
	Rejected
	ExchangeFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Redirecting:
		return "redirecting"
	case AwaitingCallback:
		return "awaiting_callback"
	case Validating:
		return "validating"
	case Exchanging:
		return "exchanging"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	case ExchangeFailed:
		return "exchange_failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type ProviderName string

const (
	Google ProviderName = "google"
	GitHub ProviderName = "github"
)

func ParseProviderName(s string) (ProviderName, error) {
	switch ProviderName(strings.ToLower(strings.TrimSpace(s))) {
	case Google:
		return Google, nil
	case GitHub:
		return GitHub, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}
