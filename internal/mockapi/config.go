package mockapi

import "time"

type Config struct {
	// JWTSecret signs issued tokens. Empty means a random per-process secret.
	JWTSecret  string        `env:"MOCKAPI_JWT_SECRET"`
	TokenTTL   time.Duration `env:"MOCKAPI_TOKEN_TTL" envDefault:"24h"`
	Issuer     string        `env:"MOCKAPI_ISSUER" envDefault:"social-mockapi"`
	BcryptCost int           `env:"MOCKAPI_BCRYPT_COST" envDefault:"10"`
	// SeedFile is an optional YAML file of users created at startup.
	SeedFile string `env:"MOCKAPI_SEED_FILE"`
	// MinPasswordLength is enforced on signup.
	MinPasswordLength int `env:"MOCKAPI_MIN_PASSWORD_LENGTH" envDefault:"6"`
	// LoginAttempts failed logins per email are allowed before /auth/login
	// answers 429; one attempt is regained every LoginWindow. Zero disables.
	LoginAttempts int           `env:"MOCKAPI_LOGIN_ATTEMPTS" envDefault:"5"`
	LoginWindow   time.Duration `env:"MOCKAPI_LOGIN_WINDOW" envDefault:"1m"`
}
