package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

// ---- fake oauth flow ----

type fakeFlow struct {
	initErr  error
	result   *oauth.Result
	waitErr  error
	lastName oauth.ProviderName
	waitName oauth.ProviderName
}

func (f *fakeFlow) Init(_ context.Context, name oauth.ProviderName) (string, error) {
	f.lastName = name
	return "https://provider.test/auth", f.initErr
}

func (f *fakeFlow) Wait(_ context.Context, name oauth.ProviderName) (*oauth.Result, error) {
	f.waitName = name
	return f.result, f.waitErr
}

// ---- Login ----

func TestLogin_Success(t *testing.T) {
	api, store, b := newBackend(t, func(r chi.Router) {
		r.Post(pathLogin, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"access": "tok123", "refresh": "r"}})
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	require.NoError(t, svc.Login(ctx(), "a@b.c", "secret"))

	got, ok := store.Get(ctx())
	require.True(t, ok)
	assert.Equal(t, "tok123", got)
	assert.Equal(t, map[string]any{"email": "a@b.c", "password": "secret"}, b.body("POST "+pathLogin))
}

func TestLogin_Refused(t *testing.T) {
	api, store, _ := newBackend(t, func(r chi.Router) {
		r.Post(pathLogin, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	err := svc.Login(ctx(), "a@b.c", "wrong")
	var le *LoginError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, http.StatusUnauthorized, le.Status)
	assert.Equal(t, "No active account found with the given credentials", le.Detail)
	assert.Equal(t, "login failed: No active account found with the given credentials", le.Error())

	_, ok := store.Get(ctx())
	assert.False(t, ok)
}

func TestLogin_RefusedNonJSON(t *testing.T) {
	api, store, _ := newBackend(t, func(r chi.Router) {
		r.Post(pathLogin, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway down", http.StatusBadGateway)
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	var le *LoginError
	require.ErrorAs(t, svc.Login(ctx(), "a@b.c", "x"), &le)
	assert.Contains(t, le.Detail, "gateway down")
}

func TestLogin_NoTokenInBody(t *testing.T) {
	api, store, _ := newBackend(t, func(r chi.Router) {
		r.Post(pathLogin, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"hello": "world"})
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	require.ErrorIs(t, svc.Login(ctx(), "a@b.c", "x"), oauth.ErrNoAccessToken)
}

// ---- Register ----

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "created",
			status: http.StatusCreated,
			body:   map[string]string{"email": "a@b.c"},
			check:  func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name:   "field errors",
			status: http.StatusBadRequest,
			body:   map[string][]string{"email": {"already taken"}},
			check: func(t *testing.T, err error) {
				var verr *client.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, map[string][]string{"email": {"already taken"}}, verr.Fields)
			},
		},
		{
			name:   "unexpected key",
			status: http.StatusBadRequest,
			body:   map[string][]string{"nickname": {"bad"}},
			check:  func(t *testing.T, err error) { require.ErrorIs(t, err, client.ErrDecode) },
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]string{"detail": "boom"},
			check:  func(t *testing.T, err error) { assert.True(t, client.IsStatus(err, http.StatusInternalServerError)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, store, b := newBackend(t, func(r chi.Router) {
				r.Post(pathRegister, func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, tt.status, tt.body)
				})
			})
			svc := NewAuthService(api, store, nil, logging.NewNop())

			err := svc.Register(ctx(), RegisterRequest{
				Username: "reader", Email: "a@b.c", FirstName: "A", LastName: "B",
				Password: "pw", RePassword: "pw",
			})
			tt.check(t, err)
			assert.Equal(t, "reader", b.body("POST " + pathRegister)["username"])
			assert.Equal(t, "pw", b.body("POST " + pathRegister)["re_password"])
		})
	}
}

// ---- VerifyEmail / ResendEmail ----

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		status  int
		want    VerifyResult
		wantErr bool
	}{
		{http.StatusOK, Verified, false},
		{http.StatusAlreadyReported, AlreadyVerified, false},
		{http.StatusNotFound, InvalidCode, false},
		{http.StatusInternalServerError, 0, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			api, store, b := newBackend(t, func(r chi.Router) {
				r.Post(pathVerifyUser, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				})
			})
			svc := NewAuthService(api, store, nil, logging.NewNop())

			got, err := svc.VerifyEmail(ctx(), "a@b.c", "123456")
			if tt.wantErr {
				assert.True(t, client.IsStatus(err, tt.status))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, map[string]any{"email": "a@b.c", "otp": "123456"}, b.body("POST "+pathVerifyUser))
		})
	}
}

func TestVerifyResult_String(t *testing.T) {
	assert.Equal(t, "verified", Verified.String())
	assert.Equal(t, "already verified", AlreadyVerified.String())
	assert.Equal(t, "invalid code", InvalidCode.String())
	assert.Equal(t, "VerifyResult(9)", VerifyResult(9).String())
}

func TestResendEmail(t *testing.T) {
	api, store, b := newBackend(t, func(r chi.Router) {
		r.Post(pathResendEmail, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	require.NoError(t, svc.ResendEmail(ctx(), "a@b.c"))
	assert.Equal(t, map[string]any{"email": "a@b.c"}, b.body("POST "+pathResendEmail))
}

func TestResendEmail_Failure(t *testing.T) {
	api, store, _ := newBackend(t, func(r chi.Router) {
		r.Post(pathResendEmail, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "user not found", http.StatusNotFound)
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	err := svc.ResendEmail(ctx(), "nobody@b.c")
	var he *client.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Contains(t, he.Body, "user not found")
}

// ---- OAuth / Logout / WhoAmI ----

func TestOAuthLogin(t *testing.T) {
	api, store, _ := newBackend(t, func(chi.Router) {})

	_, err := NewAuthService(api, store, nil, logging.NewNop()).OAuthLogin(ctx(), oauth.Google)
	require.ErrorIs(t, err, ErrOAuthDisabled)

	flow := &fakeFlow{result: &oauth.Result{Provider: oauth.GitHub, Token: "tok123", Landing: "/main"}}
	res, err := NewAuthService(api, store, flow, logging.NewNop()).OAuthLogin(ctx(), oauth.GitHub)
	require.NoError(t, err)
	assert.Equal(t, oauth.GitHub, flow.lastName)
	assert.Equal(t, oauth.GitHub, flow.waitName)
	assert.Equal(t, "/main", res.Landing)

	boom := errors.New("listen failed")
	_, err = NewAuthService(api, store, &fakeFlow{initErr: boom}, logging.NewNop()).OAuthLogin(ctx(), oauth.GitHub)
	require.ErrorIs(t, err, boom)
}

func TestLogoutDropsAuthorization(t *testing.T) {
	api, store, b := newBackend(t, func(r chi.Router) {
		r.Get(pathStats, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		})
	})
	svc := NewAuthService(api, store, nil, logging.NewNop())
	shelves := NewShelfService(api)

	require.NoError(t, store.Set(ctx(), "tok123"))
	_, err := shelves.Stats(ctx())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", b.authHeader("GET "+pathStats))

	require.NoError(t, svc.Logout(ctx()))
	_, err = shelves.Stats(ctx())
	require.NoError(t, err)
	assert.Empty(t, b.authHeader("GET "+pathStats))
}

func TestWhoAmI(t *testing.T) {
	api, store, _ := newBackend(t, func(chi.Router) {})
	svc := NewAuthService(api, store, nil, logging.NewNop())

	_, err := svc.WhoAmI(ctx())
	require.ErrorIs(t, err, ErrNotLoggedIn)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    float64(42),
		"token_type": "access",
		"exp":        exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx(), signed))

	claims, err := svc.WhoAmI(ctx())
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}
