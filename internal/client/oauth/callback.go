package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/bookup/internal/logging"
)

// Outcome is what one provider redirect produced.
type Outcome struct {
	Provider ProviderName
	Result   *Result
	Err      error
}

// CallbackServer receives provider redirects on a loopback address and
// feeds them to a Handshake. Outcomes are delivered per provider and only
// while Expect has marked that provider as awaited.
type CallbackServer struct {
	hs  *Handshake
	log logging.Logger
	srv *http.Server
	ln  net.Listener

	mu       sync.Mutex
	awaiting map[ProviderName]bool
	outcomes map[ProviderName]chan Outcome
}

func NewCallbackServer(hs *Handshake, log logging.Logger) *CallbackServer {
	return &CallbackServer{
		hs:       hs,
		log:      log.With("component", "oauth-callback"),
		awaiting: make(map[ProviderName]bool, 2),
		outcomes: map[ProviderName]chan Outcome{
			Google: make(chan Outcome, 1),
			GitHub: make(chan Outcome, 1),
		},
	}
}

// Expect marks a redirect for name as awaited and discards any outcome
// left over from an earlier sign-in.
func (s *CallbackServer) Expect(name ProviderName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting[name] = true
	if ch, ok := s.outcomes[name]; ok {
		select {
		case <-ch:
		default:
		}
	}
}

// deliver hands o to a pending Wait. Redirects nobody awaits are dropped,
// and so are rejected ones that did not come from the provider: the
// pending nonce is still valid and the real redirect may follow.
func (s *CallbackServer) deliver(ctx context.Context, o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaiting[o.Provider] {
		s.log.Debug(ctx, "dropping unexpected callback", "provider", string(o.Provider))
		return
	}
	if errors.Is(o.Err, ErrHandshakeRejected) && !errors.Is(o.Err, ErrProviderDenied) {
		s.log.Debug(ctx, "ignoring stray callback", "provider", string(o.Provider), "error", o.Err)
		return
	}

	select {
	case s.outcomes[o.Provider] <- o:
		s.awaiting[o.Provider] = false
	default:
		s.log.Debug(ctx, "dropping callback outcome, one is already pending", "provider", string(o.Provider))
	}
}

// Routes returns the callback router. Paths match the redirect URIs
// registered with the providers.
func (s *CallbackServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/google_auth", s.handle(Google))
	r.Get("/github_auth", s.handle(GitHub))
	return r
}

func (s *CallbackServer) handle(name ProviderName) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.hs.Callback(r.Context(), name, r.URL.Query())

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		switch {
		case err == nil:
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		case errors.Is(err, ErrHandshakeRejected):
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprintln(w, "Sign-in rejected. Start again from the terminal.")
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = fmt.Fprintf(w, "Sign-in failed: %v\n", err)
		}

		s.deliver(r.Context(), Outcome{Provider: name, Result: res, Err: err})
	}
}

// Start listens on addr, e.g. "127.0.0.1:8085", and serves in the
// background.
func (s *CallbackServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(context.Background(), "callback server stopped", "error", err)
		}
	}()
	s.log.Info(context.Background(), "callback server listening", "addr", ln.Addr().String())
	return nil
}

// Addr is the bound address, useful when Start was given port 0.
func (s *CallbackServer) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Wait blocks until the redirect for name arrives or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context, name ProviderName) (*Result, error) {
	ch, ok := s.outcomes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	select {
	case o := <-ch:
		return o.Result, o.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *CallbackServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
