package kvstore

// Driver names accepted by Config.Driver.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selects and configures the session store.
type Config struct {
	Driver string `env:"STORE_DRIVER" envDefault:"file"`
	// Path is the FileStore location. Empty means DefaultPath().
	Path      string `env:"STORE_PATH"`
	KeyPrefix string `env:"STORE_KEY_PREFIX" envDefault:"social:"`
	// EncryptionKey is a base64 32-byte key. When set, the store is wrapped
	// in an EncryptedStore.
	EncryptionKey string `env:"STORE_ENCRYPTION_KEY"`
}
