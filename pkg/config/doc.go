// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for reading .env files. Files are read, not
// applied: their values fill in variables missing from the process
// environment without mutating it, so real environment variables always win.
//
// # Usage
//
//	type Config struct {
//	    BaseURL string        `env:"API_BASE_URL,required"`
//	    Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
//	}
//
//	cfg, err := config.Load[Config](config.WithEnvFiles(".env.local"))
//	if err != nil {
//	    // errors.Is(err, config.ErrParsingConfig) or config.ErrEnvFile
//	}
//
// A ".env" file in the working directory is read when present. Files passed
// to WithEnvFiles must exist. WithPrefix scopes every tag under a prefix and
// WithEnvironment replaces the process environment entirely, which keeps tests
// hermetic.
//
// MustLoad panics on failure and is meant for main packages.
package config
