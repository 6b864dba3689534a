package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookup/internal/client/client"
	"github.com/dmitrijs2005/bookup/internal/client/config"
	"github.com/dmitrijs2005/bookup/internal/client/oauth"
	"github.com/dmitrijs2005/bookup/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/bookup/internal/client/services"
	"github.com/dmitrijs2005/bookup/internal/client/tokens"
	"github.com/dmitrijs2005/bookup/internal/logging"
)

// oauthWaitTimeout bounds how long the CLI waits for the browser redirect.
const oauthWaitTimeout = 5 * time.Minute

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	callback *oauth.CallbackServer

	tokens  *tokens.Store
	auth    services.AuthService
	catalog services.CatalogService
	shelves services.ShelfService
	reviews services.ReviewService

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens local storage and wires the services for c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := localstore.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	var repo localstore.Repository = localstore.NewSQLiteRepository(db)
	if c.StoragePassphrase != "" {
		repo, err = localstore.NewSealedRepository(ctx, repo, []byte(c.StoragePassphrase))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	store := tokens.NewStore(repo, log)
	api, err := client.New(client.Options{
		BaseURL:  c.BackendURL,
		Timeout:  c.RequestTimeout,
		MaxPages: c.MaxPages,
	}, store, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var providers []oauth.Provider
	if c.OAuthEnabled(oauth.Google) {
		providers = append(providers, oauth.NewGoogleProvider(c.Google, api))
	}
	if c.OAuthEnabled(oauth.GitHub) {
		providers = append(providers, oauth.NewGitHubProvider(c.GitHub, api))
	}

	var (
		flow     services.OAuthFlow
		callback *oauth.CallbackServer
	)
	if len(providers) > 0 {
		hs := oauth.NewHandshake(repo, store, oauth.WriterNavigator{W: os.Stdout}, c.LandingRoute, log, providers...)
		callback = oauth.NewCallbackServer(hs, log)
		flow = &oauthFlow{hs: hs, srv: callback, addr: c.CallbackAddr}
	}

	return &App{
		config:   c,
		log:      log,
		db:       db,
		callback: callback,
		tokens:   store,
		auth:     services.NewAuthService(api, store, flow, log),
		catalog:  services.NewCatalogService(api),
		shelves:  services.NewShelfService(api),
		reviews:  services.NewReviewService(api),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	a.log.Debug(ctx, "repl started", "backend", a.config.BackendURL)
	fmt.Fprintln(a.out, "Welcome to BookUp CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.callback != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.callback.Shutdown(ctx); err != nil {
			a.log.Warn(ctx, "callback server shutdown failed", "error", err)
		}
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.tokens.Get(ctx)
	return ok
}

func (a *App) getStatus(ctx context.Context) string {
	t, ok := a.tokens.Get(ctx)
	if !ok {
		return "(guest)"
	}
	if claims, err := tokens.Inspect(t); err == nil && claims.UserID != "" {
		return fmt.Sprintf("(user %s)", claims.UserID)
	}
	return "(signed in)"
}

// oauthFlow starts the loopback callback server on first use and waits
// for the provider redirect.
type oauthFlow struct {
	hs   *oauth.Handshake
	srv  *oauth.CallbackServer
	addr string

	once     sync.Once
	startErr error
}

func (f *oauthFlow) Init(ctx context.Context, name oauth.ProviderName) (string, error) {
	f.once.Do(func() { f.startErr = f.srv.Start(f.addr) })
	if f.startErr != nil {
		return "", f.startErr
	}
	f.srv.Expect(name)
	return f.hs.Init(ctx, name)
}

func (f *oauthFlow) Wait(ctx context.Context, name oauth.ProviderName) (*oauth.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, oauthWaitTimeout)
	defer cancel()
	return f.srv.Wait(ctx, name)
}
