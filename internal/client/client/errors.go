package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNetwork         = errors.New("network error")
	ErrDecode          = errors.New("decode error")
	ErrPaginationCycle = errors.New("pagination cycle detected")
	ErrTooManyPages    = errors.New("too many pages")
	ErrForeignPage     = errors.New("next page is not on the backend")
)

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err carries an HTTPError with the given status.
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}

// ValidationError holds per-field messages, e.g. {"email": ["already taken"]}.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Field returns the messages for one field, nil when it has none.
func (e *ValidationError) Field(name string) []string {
	return e.Fields[name]
}
