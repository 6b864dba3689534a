package config

import "os"

// Secrets stay out of config files and shell history.
const (
	EnvGoogleClientSecret = "BOOKUP_GOOGLE_CLIENT_SECRET"
	EnvStoragePassphrase  = "BOOKUP_STORAGE_PASSPHRASE"
)

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvGoogleClientSecret); ok && v != "" {
		cfg.Google.ClientSecret = v
	}
	if v, ok := os.LookupEnv(EnvStoragePassphrase); ok && v != "" {
		cfg.StoragePassphrase = v
	}
}
