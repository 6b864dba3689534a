package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
)

// Response is a fully read backend answer.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) Text() string {
	return string(r.body)
}

func (r *Response) Bytes() []byte {
	return r.body
}

// DecodeJSON unmarshals the body into v. Failures wrap ErrDecode.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// Err returns nil for 2xx and an *HTTPError otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &HTTPError{Status: r.StatusCode, Body: r.Text()}
}

// ValidationErrors decodes a field-keyed error body such as
// {"email": ["already taken"], "password": ["too short"]}. A single string
// value is accepted as a one-element list. When allowed is non-empty any
// other key makes the body malformed. Malformed bodies yield ErrDecode.
func (r *Response) ValidationErrors(allowed ...string) (*ValidationError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(r.body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty error body", ErrDecode)
	}

	fields := make(map[string][]string, len(raw))
	for key, value := range raw {
		if len(allowed) > 0 && !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("%w: unexpected key %q", ErrDecode, key)
		}

		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				return nil, fmt.Errorf("%w: field %q: expected list of strings, got %s", ErrDecode, key, string(value))
			}
			list = []string{single}
		}
		fields[key] = list
	}
	return &ValidationError{Fields: fields}, nil
}
