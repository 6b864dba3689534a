// Package localstore is the client's durable key-value storage: the place
// the access token and the OAuth state nonces survive restarts.
//
// Implementations:
//
//   - SQLiteRepository: rows in the local_storage table of the client
//     database, created by the embedded goose migrations (see Open).
//   - MemoryRepository: a map guarded by a mutex, for tests and ephemeral runs.
//   - SealedRepository: wraps another Repository and encrypts every value
//     with a key derived from a passphrase.
//
// Contract shared by all implementations: Get returns (nil, nil) for a
// missing key, Set overwrites, Delete of a missing key is not an error.
package localstore
