package kvstore

import (
	"context"
	"errors"
	"maps"
	"slices"
)

// Store is a durable string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Batcher is implemented by stores that write or remove several keys in one
// step: either all changes are applied or none are.
type Batcher interface {
	SetMany(ctx context.Context, values map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// SetMany writes values using s's Batcher when it has one. Otherwise keys
// are written one at a time in sorted order; if a write fails, every key in
// values is deleted again so no partial set is left behind, and the write
// error is returned joined with any cleanup errors.
func SetMany(ctx context.Context, s Store, values map[string]string) error {
	if b, ok := s.(Batcher); ok {
		return b.SetMany(ctx, values)
	}

	keys := slices.Sorted(maps.Keys(values))
	for _, key := range keys {
		if err := s.Set(ctx, key, values[key]); err != nil {
			return errors.Join(err, DeleteMany(ctx, s, keys...))
		}
	}
	return nil
}

// DeleteMany removes keys using s's Batcher when it has one. Otherwise it
// attempts every key and joins the errors.
func DeleteMany(ctx context.Context, s Store, keys ...string) error {
	if b, ok := s.(Batcher); ok {
		return b.DeleteMany(ctx, keys...)
	}

	var errs []error
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
