// Package cli provides the interactive BookUp command-line client.
//
// It wires configuration, local storage, the session token store, the API
// client and the services behind a small REPL. Typical flow: log in with a
// password or through Google/GitHub, browse the catalogue, manage shelves
// and write reviews.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Command errors are printed and the loop carries on.
package cli
