// Package httpserver runs an http.Handler until its context ends and then
// shuts down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithReadyHook(func(addr string) { log.Info("listening", "addr", addr) }),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run binds the listener itself, so an address such as "127.0.0.1:0" works
// and Addr reports the port actually chosen.
//
// HealthHandler serves liveness and readiness probes.
package httpserver
