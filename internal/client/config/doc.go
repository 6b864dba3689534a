// Package config loads runtime configuration for the BookUp CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or $BOOKUP_CONFIG.
//  3. Environment variables for secrets (see env.go).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "backend_url": "http://localhost:8000",
//	  "request_timeout": "15s",
//	  "database_path": "bookup.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "landing_route": "/main",
//	  "callback_addr": "127.0.0.1:8085",
//	  "max_pages": 100,
//	  "google": {"client_id": "...", "redirect_uri": "http://127.0.0.1:8085/google_auth"},
//	  "github": {"client_id": "..."}
//	}
package config
