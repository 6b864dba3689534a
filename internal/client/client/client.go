package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bookup/internal/client/tokens"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultMaxPages = 100

	// maxBodySize caps how much of a response body is read into memory.
	maxBodySize = 10 << 20

	HeaderRequestID = "X-Request-ID"
)

// TokenSource yields the current access token, if any.
type TokenSource interface {
	Get(ctx context.Context) (string, bool)
}

type Options struct {
	BaseURL  string
	Timeout  time.Duration
	MaxPages int

	// HTTPClient overrides the underlying client; its Timeout is replaced.
	HTTPClient *http.Client
}

type Client struct {
	base     *url.URL
	http     *http.Client
	timeout  time.Duration
	maxPages int
	tokens   TokenSource
	log      logging.Logger
}

// New returns a Client for the backend at opts.BaseURL. src may be nil.
func New(opts Options, src TokenSource, log logging.Logger) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		cp := *opts.HTTPClient
		hc = &cp
	}
	hc.Timeout = timeout

	if log == nil {
		log = logging.NewNop()
	}

	return &Client{
		base:     base,
		http:     hc,
		timeout:  timeout,
		maxPages: maxPages,
		tokens:   src,
		log:      log.With("component", "api"),
	}, nil
}

// Resolve turns path into an absolute URL. Absolute inputs are returned
// unchanged, relative ones are joined to the base URL.
func (c *Client) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return c.base.ResolveReference(ref).String(), nil
}

// sameOrigin reports whether target is served by the backend.
func (c *Client) sameOrigin(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, c.base.Scheme) && strings.EqualFold(u.Host, c.base.Host)
}

func (c *Client) bearer(ctx context.Context) (string, bool) {
	if t, ok := tokens.FromContext(ctx); ok {
		return t, true
	}
	if c.tokens != nil {
		return c.tokens.Get(ctx)
	}
	return "", false
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	target, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The token never leaves the backend's origin.
	if t, ok := c.bearer(ctx); ok && c.sameOrigin(target) {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", ErrNetwork, method, target, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, body: data}, nil
}

// Get fetches path and decodes the JSON body into out. Non-2xx answers
// return *HTTPError.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	return resp.DecodeJSON(out)
}

// GetAs is the generic form of Client.Get.
func GetAs[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.Get(ctx, path, &out)
	return out, err
}

// Post sends body as JSON. The response is returned whatever its status so
// the caller can branch on it; only transport failures are errors.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete discards the response body. Non-2xx answers return *HTTPError.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return resp.Err()
}

// IsNetwork reports whether err is a transport failure, including timeouts.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
