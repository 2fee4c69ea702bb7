package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/ratelimiter"
	"github.com/SaadSolutions/social/pkg/validator"
)

// Server is the mock backend. Create it with New and mount Handler.
type Server struct {
	cfg    Config
	users  *userStore
	tokens *tokenIssuer
	logger *slog.Logger
	health http.Handler

	// attempts throttles failed logins per email; nil disables it.
	attempts *ratelimiter.Bucket
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHealthHandler serves h at GET /health instead of the plain "ALIVE"
// responder.
func WithHealthHandler(h http.Handler) Option {
	return func(s *Server) {
		if h != nil {
			s.health = h
		}
	}
}

// WithSeed creates the given users at startup.
func WithSeed(users ...SeedUser) Option {
	return func(s *Server) {
		for _, u := range users {
			if _, err := s.register(context.Background(), u.Email, u.Password); err != nil {
				s.logger.Warn("skip seed user", logger.Email(u.Email), logger.Error(err))
			}
		}
	}
}

// New builds a Server from cfg. A configured SeedFile is loaded before opts
// are applied.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d", ErrInvalidConfig, cfg.BcryptCost)
	}

	tokens, err := newTokenIssuer(cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		users:  newUserStore(),
		tokens: tokens,
		logger: logger.Discard(),
		health: http.HandlerFunc(alive),
	}

	if cfg.LoginAttempts > 0 {
		s.attempts, err = ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
			Capacity:       cfg.LoginAttempts,
			RefillRate:     1,
			RefillInterval: cfg.LoginWindow,
		})
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
	}

	// Logger options first so seeding can log.
	for _, opt := range opts {
		opt(s)
	}

	if cfg.SeedFile != "" {
		seed, err := LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		WithSeed(seed...)(s)
	}

	s.logger = s.logger.With(logger.Component("mockapi"))
	return s, nil
}

// Users reports how many accounts exist.
func (s *Server) Users() int {
	return s.users.count()
}

func (s *Server) validate(email, password string) error {
	return validator.Apply(
		validator.RequiredString("email", email),
		validator.ValidEmail("email", email),
		validator.RequiredString("password", password),
		validator.MinLenString("password", password, s.cfg.MinPasswordLength),
	)
}

func (s *Server) register(_ context.Context, email, password string) (User, error) {
	if err := s.validate(email, password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("mockapi: hash password: %w", err)
	}
	return s.users.create(email, hash)
}

func (s *Server) authenticate(_ context.Context, email, password string) (User, error) {
	acc, ok := s.users.byEmailKey(email)
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("mockapi: compare password: %w", err)
	}
	return acc.user, nil
}

func alive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}
