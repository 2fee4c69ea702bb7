// Package kvstore is the durable string key-value store the session manager
// persists its token and user record to.
//
// Store is the minimal contract: Get, Set and Delete. A missing key is
// reported by Get as ("", false, nil), never as an error. Stores that can
// write several keys in one step also implement Batcher; the package-level
// SetMany and DeleteMany helpers use it when available and fall back to
// key-by-key calls otherwise.
//
// Implementations:
//
//   - MemoryStore keeps values in process memory. Useful in tests and for
//     ephemeral runs.
//   - FileStore keeps a JSON object in a single file written atomically
//     (temp file + rename, mode 0600).
//   - RedisStore keeps values under a key prefix in Redis and batches writes
//     in a MULTI/EXEC pipeline.
//   - EncryptedStore wraps any Store and seals values with pkg/secrets.
//
// A store that finds a value it cannot read back returns ErrCorruptValue.
// Callers should treat that value as absent and remove it.
package kvstore
