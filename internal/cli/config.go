package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/config"
	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/redis"
	"github.com/SaadSolutions/social/pkg/requestid"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "SOCIAL_"

// Config is the full client configuration.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"production"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// MinPasswordLength is the signup policy applied before calling the API.
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`

	API   apiclient.Config
	Store kvstore.Config
	Redis redis.Config
}

// LoadConfig reads Config from env (nil means the process environment)
// and the given .env files.
func LoadConfig(env map[string]string, envFiles ...string) (Config, error) {
	opts := []config.Option{config.WithPrefix(EnvPrefix)}
	if env != nil {
		opts = append(opts, config.WithEnvironment(env))
	}
	if len(envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(envFiles...))
	}
	return config.Load[Config](opts...)
}

func newLogger(cfg Config, verbose bool, out io.Writer) (*slog.Logger, error) {
	format := logger.Format(strings.ToLower(cfg.LogFormat))
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("cli: unknown log format %q", cfg.LogFormat)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	return logger.New(
		logger.WithEnvironment(cfg.Env, "social"),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(out),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	), nil
}
