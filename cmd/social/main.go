// Command social is the terminal client for the social auth backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaadSolutions/social/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New().Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
