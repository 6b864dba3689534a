package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/bookup/internal/client/tokens"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

// ---- fake backend ----

type backend struct {
	mu     sync.Mutex
	bodies map[string]map[string]any
	auth   map[string]string
	hits   map[string]int
}

func (b *backend) record(r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	key := r.Method + " " + r.URL.Path
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bodies[key] = body
	b.auth[key] = r.Header.Get("Authorization")
	b.hits[key]++
}

func (b *backend) body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (b *backend) authHeader(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[key]
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newBackend starts a chi-routed fake API; routes registers the handlers
// under test.
func newBackend(t *testing.T, routes func(r chi.Router)) (*client.Client, *tokens.Store, *backend) {
	t.Helper()
	b := &backend{bodies: map[string]map[string]any{}, auth: map[string]string{}, hits: map[string]int{}}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.record(req)
			next.ServeHTTP(w, req)
		})
	})
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := tokens.NewStore(localstore.NewMemoryRepository(), logging.NewNop())
	api, err := client.New(client.Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, store, logging.NewNop())
	require.NoError(t, err)
	return api, store, b
}

func ctx() context.Context { return context.Background() }
