package cli

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/client/services"
)

var ErrUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// intArg parses args[i] as a positive id.
func intArg(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, args[i])
	}
	return n, nil
}

// describeError turns an error into text fit for the terminal.
func describeError(err error) string {
	var (
		verr  *client.ValidationError
		lerr  *services.LoginError
		ferr  *oauth.ExchangeFailedError
		herr  *client.HTTPError
		lines []string
	)

	switch {
	case errors.Is(err, ErrUsage):
		return strings.TrimPrefix(err.Error(), ErrUsage.Error()+": ")
	case errors.As(err, &verr):
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("  %s: %s", k, strings.Join(verr.Field(k), "; ")))
		}
		return "Please fix the following:\n" + strings.Join(lines, "\n")
	case errors.As(err, &lerr):
		return lerr.Error()
	case errors.Is(err, oauth.ErrHandshakeRejected):
		return "Sign-in was rejected (state mismatch or cancelled). Please try again."
	case errors.As(err, &ferr):
		return ferr.Error()
	case errors.Is(err, client.ErrNetwork):
		return "Backend unreachable: " + err.Error()
	case errors.As(err, &herr) && (herr.Status == http.StatusUnauthorized || herr.Status == http.StatusForbidden):
		return "Not authorized. Please log in."
	case errors.As(err, &herr) && herr.Status == http.StatusNotFound:
		return "Not found."
	default:
		return err.Error()
	}
}
