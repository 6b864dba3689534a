package oauth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookup/internal/client/client"
)

type accessHolder struct {
	Access string `json:"access"`
}

// backendAuthResponse covers the shapes the sign-in endpoints answer with:
// {"access": ..}, {"user": {"access": ..}} and {"code": {"access": ..}}.
type backendAuthResponse struct {
	Access string          `json:"access"`
	User   *accessHolder   `json:"user"`
	Code   json.RawMessage `json:"code"`
}

// AccessToken pulls the access token out of a 2xx sign-in response.
func AccessToken(resp *client.Response) (string, error) {
	var body backendAuthResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return "", err
	}

	if body.Access != "" {
		return body.Access, nil
	}
	if body.User != nil && body.User.Access != "" {
		return body.User.Access, nil
	}
	if len(body.Code) > 0 {
		var nested accessHolder
		if err := json.Unmarshal(body.Code, &nested); err == nil && nested.Access != "" {
			return nested.Access, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoAccessToken, truncate(resp.Text(), 200))
}

// backendExchange posts payload to path and extracts the access token.
func backendExchange(ctx context.Context, api Backend, path string, payload any) (string, error) {
	resp, err := api.Post(ctx, path, payload)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackendExchange, err)
	}
	return AccessToken(resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// detailOf returns the "detail" (or "error") message of a JSON error body.
func detailOf(body string) string {
	var b struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		return ""
	}
	if b.Detail != "" {
		return b.Detail
	}
	return b.Error
}
