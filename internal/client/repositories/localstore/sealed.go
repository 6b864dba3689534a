package localstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookup/internal/cryptox"
	"github.com/dmitrijs2005/bookup/internal/shared"
)

// KeySealSalt holds the argon2 salt of a sealed store. It is stored in the
// clear and survives Clear.
const KeySealSalt = "_seal_salt"

const sealSaltSize = 16

// SealedRepository encrypts values before handing them to the wrapped
// repository. Keys stay in the clear.
type SealedRepository struct {
	inner Repository
	key   []byte
}

// NewSealedRepository derives the sealing key from passphrase and the salt
// stored in inner, generating and persisting a salt on first use.
func NewSealedRepository(ctx context.Context, inner Repository, passphrase []byte) (*SealedRepository, error) {
	salt, err := inner.Get(ctx, KeySealSalt)
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		salt, err = shared.GenerateRandBytes(sealSaltSize)
		if err != nil {
			return nil, fmt.Errorf("generate seal salt: %w", err)
		}
		if err := inner.Set(ctx, KeySealSalt, salt); err != nil {
			return nil, err
		}
	}

	return &SealedRepository{inner: inner, key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func (r *SealedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := cryptox.Open(sealed, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal local_storage[%s]: %w", key, err)
	}
	return plain, nil
}

func (r *SealedRepository) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, r.key)
	if err != nil {
		return fmt.Errorf("failed to seal local_storage[%s]: %w", key, err)
	}
	return r.inner.Set(ctx, key, sealed)
}

func (r *SealedRepository) Delete(ctx context.Context, key string) error {
	return r.inner.Delete(ctx, key)
}

func (r *SealedRepository) List(ctx context.Context) (map[string][]byte, error) {
	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(all))
	for k, v := range all {
		if k == KeySealSalt {
			continue
		}
		plain, err := cryptox.Open(v, r.key)
		if err != nil {
			return nil, fmt.Errorf("failed to unseal local_storage[%s]: %w", k, err)
		}
		out[k] = plain
	}
	return out, nil
}

func (r *SealedRepository) Clear(ctx context.Context) error {
	all, err := r.inner.List(ctx)
	if err != nil {
		return err
	}
	for k := range all {
		if k == KeySealSalt {
			continue
		}
		if err := r.inner.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
