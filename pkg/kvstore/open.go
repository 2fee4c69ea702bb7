package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SaadSolutions/social/pkg/redis"
	"github.com/SaadSolutions/social/pkg/secrets"
)

// cipherInfo is the HKDF label for store encryption keys.
const cipherInfo = "social/kvstore/v1"

// DefaultPath is the FileStore location used when Config.Path is empty:
// <user config dir>/social/session.json, or ./.social/session.json when the
// platform has no config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".social", "session.json")
	}
	return filepath.Join(dir, "social", "session.json")
}

// Open builds the Store described by cfg. redisCfg is used only by the
// redis driver. The returned close func releases driver resources and is
// never nil.
func Open(ctx context.Context, cfg Config, redisCfg redis.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	var (
		store   Store
		closeFn = noop
	)

	switch cfg.Driver {
	case "", DriverFile:
		path := cfg.Path
		if path == "" {
			path = DefaultPath()
		}
		fileStore, err := NewFileStore(path)
		if err != nil {
			return nil, noop, err
		}
		store = fileStore
	case DriverMemory:
		store = NewMemoryStore(nil)
	case DriverRedis:
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, noop, err
		}
		store = NewRedisStore(client, cfg.KeyPrefix)
		closeFn = client.Close
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if cfg.EncryptionKey != "" {
		key, err := secrets.DecodeKey(cfg.EncryptionKey)
		if err != nil {
			_ = closeFn()
			return nil, noop, fmt.Errorf("%w: encryption key: %w", ErrInvalidConfig, err)
		}
		c, err := secrets.NewCipher(key, cipherInfo)
		if err != nil {
			_ = closeFn()
			return nil, noop, err
		}
		store = NewEncryptedStore(store, c)
	}

	return store, closeFn, nil
}
