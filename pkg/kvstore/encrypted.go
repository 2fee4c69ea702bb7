package kvstore

import (
	"context"
	"errors"

	"github.com/SaadSolutions/social/pkg/secrets"
)

// EncryptedStore seals values before handing them to the wrapped Store.
// Each value is bound to its key, so a sealed value moved under another key
// does not open. A value that fails to open is reported as ErrCorruptValue.
type EncryptedStore struct {
	inner  Store
	cipher *secrets.Cipher
}

var (
	_ Store         = (*EncryptedStore)(nil)
	_ Batcher       = (*EncryptedStore)(nil)
	_ HealthChecker = (*EncryptedStore)(nil)
)

func NewEncryptedStore(inner Store, cipher *secrets.Cipher) *EncryptedStore {
	if inner == nil || cipher == nil {
		panic("kvstore: encrypted store needs a store and a cipher")
	}
	return &EncryptedStore{inner: inner, cipher: cipher}
}

func (s *EncryptedStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	plain, err := s.cipher.Open(key, sealed)
	if err != nil {
		return "", false, errors.Join(ErrCorruptValue, err)
	}
	return plain, true, nil
}

func (s *EncryptedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.cipher.Seal(key, value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// SetMany seals every value first and then delegates to the inner store's
// batch semantics.
func (s *EncryptedStore) SetMany(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for key, value := range values {
		v, err := s.cipher.Seal(key, value)
		if err != nil {
			return err
		}
		sealed[key] = v
	}
	return SetMany(ctx, s.inner, sealed)
}

func (s *EncryptedStore) DeleteMany(ctx context.Context, keys ...string) error {
	return DeleteMany(ctx, s.inner, keys...)
}

// Healthcheck reports the wrapped store's health.
func (s *EncryptedStore) Healthcheck(ctx context.Context) error {
	return Healthcheck(ctx, s.inner)
}
