package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Option tunes a single Load call.
type Option func(*options)

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// WithEnvFiles reads the given .env files in order. Earlier files win over
// later ones; the process environment wins over all of them.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "SOCIAL_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment parses from vars instead of the process environment.
// Env files are still merged underneath.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = make(map[string]string, len(vars))
		for k, v := range vars {
			o.environment[k] = v
		}
	}
}

// Load parses configuration into a new T.
func Load[T any](opts ...Option) (T, error) {
	var zero T

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	vars := o.environment
	if vars == nil {
		vars = processEnvironment()
	}

	fileVars, err := readEnvFiles(o.files)
	if err != nil {
		return zero, err
	}
	for k, v := range fileVars {
		if _, set := vars[k]; !set {
			vars[k] = v
		}
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	})
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
	return cfg
}

func processEnvironment() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

// readEnvFiles merges files so that the first definition of a key wins,
// matching godotenv.Load semantics without touching the process environment.
func readEnvFiles(files []string) (map[string]string, error) {
	merged := make(map[string]string)

	if len(files) == 0 {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return merged, nil
		}
		files = []string{defaultEnvFile}
	}

	for _, file := range files {
		vars, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", file, err))
		}
		for k, v := range vars {
			if _, set := merged[k]; !set {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
