package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/authsession"
	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitAuth  = 1
	ExitUsage = 2
)

// App runs one social command per Run call.
type App struct {
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	env    map[string]string
}

// Option configures an App.
type Option func(*App)

// WithStdin sets where prompted passwords are read from.
func WithStdin(r io.Reader) Option {
	return func(a *App) { a.stdin = bufio.NewReader(r) }
}

// WithStdout sets the destination for command output.
func WithStdout(w io.Writer) Option {
	return func(a *App) { a.stdout = w }
}

// WithStderr sets the destination for logs and error messages.
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// WithEnvironment replaces the process environment as the config source.
func WithEnvironment(env map[string]string) Option {
	return func(a *App) { a.env = env }
}

// New creates an App bound to the process stdio unless overridden.
func New(opts ...Option) *App {
	a := &App{
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.stdout = &lockedWriter{w: a.stdout}
	return a
}

// session bundles what a command needs.
type session struct {
	mgr   *authsession.Manager
	store kvstore.Store
	log   *slog.Logger
	cfg   Config
}

// Run parses args (without the program name), restores the persisted
// session and executes the command. It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("social", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	envFile := fs.String("env-file", "", "read settings from this .env file")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Usage = func() { a.usage(fs) }

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() == 0 {
		a.usage(fs)
		return ExitUsage
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n", name)
		a.usage(fs)
		return ExitUsage
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := LoadConfig(a.env, files...)
	if err != nil {
		return a.fail(err, ExitUsage)
	}

	log, err := newLogger(cfg, *verbose, a.stderr)
	if err != nil {
		return a.fail(err, ExitUsage)
	}
	log = log.With(logger.Operation(name))

	store, closeStore, err := kvstore.Open(ctx, cfg.Store, cfg.Redis)
	if err != nil {
		return a.fail(err, ExitAuth)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WarnContext(ctx, "closing store", logger.Error(err))
		}
	}()

	api, err := apiclient.NewFromConfig(cfg.API, apiclient.WithLogger(log))
	if err != nil {
		return a.fail(err, ExitUsage)
	}

	mgr := authsession.New(store, api, authsession.WithLogger(log))
	defer mgr.Close()

	mgr.Restore(ctx)

	guard := watchRoutes(ctx, mgr, a.stdout)
	code := cmd.run(ctx, a, session{mgr: mgr, store: store, log: log, cfg: cfg}, rest)
	guard.Stop()

	return code
}

func (a *App) usage(fs *flag.FlagSet) {
	fmt.Fprintln(a.stderr, "usage: social [flags] <command> [command flags]")
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(a.stderr, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "flags:")
	fs.PrintDefaults()
}

// fail reports err on stderr. Auth errors render as their user-facing
// message only.
func (a *App) fail(err error, code int) int {
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	return code
}

// reject reports a local policy failure.
func (a *App) reject(err error) int {
	fmt.Fprintf(a.stderr, "error: %s\n", policyMessage(err))
	return ExitUsage
}

// prompt reads one line from stdin. An exhausted stdin yields "".
func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.stderr, "%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
