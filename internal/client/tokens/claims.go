package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// Claims is what the client can read from an access token without the
// backend's signing key.
type Claims struct {
	Subject   string
	UserID    string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry is known and before now.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect decodes the token payload without verifying its signature. The
// result is informational only; the backend remains the authority.
func Inspect(token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	out := &Claims{}
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if tt, ok := claims["token_type"].(string); ok {
		out.TokenType = tt
	}

	switch id := claims["user_id"].(type) {
	case string:
		out.UserID = id
	case float64:
		out.UserID = strconv.FormatInt(int64(id), 10)
	}
	if out.UserID == "" {
		out.UserID = out.Subject
	}
	return out, nil
}
