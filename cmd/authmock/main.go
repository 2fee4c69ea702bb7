// Command authmock serves the local auth backend used for development and
// integration tests.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaadSolutions/social/internal/mockapi"
	"github.com/SaadSolutions/social/pkg/config"
	"github.com/SaadSolutions/social/pkg/httpserver"
	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/requestid"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	API  mockapi.Config
	HTTP httpserver.Config
}

func main() {
	cfg := config.MustLoad[appConfig]()

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "authmock"),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("authmock stopped", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	srv, handler, err := setup(cfg, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx, handler)
}

// setup builds the server and the backend routes; /health is answered by
// the server's own health handler.
func setup(cfg appConfig, log *slog.Logger) (*httpserver.Server, http.Handler, error) {
	var api *mockapi.Server

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithReadyHook(func(addr string) {
			log.Info("auth backend listening", slog.String("addr", addr), slog.Int("users", api.Users()))
		}),
	)

	api, err := mockapi.New(cfg.API,
		mockapi.WithLogger(log),
		mockapi.WithHealthHandler(srv.HealthHandler()),
	)
	if err != nil {
		return nil, nil, err
	}
	return srv, api.Handler(), nil
}
