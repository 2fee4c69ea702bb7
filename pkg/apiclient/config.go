package apiclient

import "time"

// Config holds the environment-driven client settings.
type Config struct {
	BaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout     time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	Retries     int           `env:"API_RETRIES" envDefault:"0"`
	MaxBodySize int64         `env:"API_MAX_BODY_SIZE" envDefault:"1048576"`
	UserAgent   string        `env:"API_USER_AGENT" envDefault:"social-client/1"`
}

// NewFromConfig builds a Client from cfg. Extra options are applied after
// the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRetries(cfg.Retries),
		WithMaxBodySize(cfg.MaxBodySize),
		WithUserAgent(cfg.UserAgent),
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}
