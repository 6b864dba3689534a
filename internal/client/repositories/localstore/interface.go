package localstore

import (
	"context"
	"database/sql"
)

// Well-known keys.
const (
	KeyAccessToken      = "access_token"
	KeyGoogleOAuthState = "google_oauth_state"
	KeyGitHubOAuthState = "github_oauth_state"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// DBTX is the subset of database/sql the SQLite repository needs.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
