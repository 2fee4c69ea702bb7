package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/SaadSolutions/social/pkg/authsession"
	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *App, s session, args []string) int
}

var commands = map[string]command{
	"status": {summary: "show the current session", run: runStatus},
	"login":  {summary: "sign in with email and password", run: runLogin},
	"signup": {summary: "create an account and sign in", run: runSignup},
	"logout": {summary: "sign out and forget the session", run: runLogout},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newFlagSet(a *App, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func runStatus(ctx context.Context, a *App, s session, args []string) int {
	if err := newFlagSet(a, "status").Parse(args); err != nil {
		return ExitUsage
	}

	printUser(a.stdout, s.mgr)
	if err := kvstore.Healthcheck(ctx, s.store); err != nil {
		return a.fail(fmt.Errorf("session store unavailable: %w", err), ExitAuth)
	}
	return ExitOK
}

func runLogin(ctx context.Context, a *App, s session, args []string) int {
	fs := newFlagSet(a, "login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if err := emailPolicy(*email); err != nil {
		return a.reject(err)
	}
	if *password == "" {
		p, err := a.prompt("Password")
		if err != nil {
			return a.fail(err, ExitUsage)
		}
		*password = p
	}

	if err := s.mgr.Login(ctx, *email, *password); err != nil {
		s.log.DebugContext(ctx, "login failed", logger.Error(err))
		return a.fail(err, ExitAuth)
	}

	printUser(a.stdout, s.mgr)
	return ExitOK
}

func runSignup(ctx context.Context, a *App, s session, args []string) int {
	fs := newFlagSet(a, "signup")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	confirm := fs.String("confirm", "", "password confirmation (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if err := emailPolicy(*email); err != nil {
		return a.reject(err)
	}
	for _, field := range []struct {
		value *string
		label string
	}{
		{password, "Password"},
		{confirm, "Confirm password"},
	} {
		if *field.value != "" {
			continue
		}
		v, err := a.prompt(field.label)
		if err != nil {
			return a.fail(err, ExitUsage)
		}
		*field.value = v
	}

	if err := signupPolicy(*password, *confirm, s.cfg.MinPasswordLength); err != nil {
		return a.reject(err)
	}

	if err := s.mgr.Signup(ctx, *email, *password); err != nil {
		s.log.DebugContext(ctx, "signup failed", logger.Error(err))
		return a.fail(err, ExitAuth)
	}

	printUser(a.stdout, s.mgr)
	return ExitOK
}

func runLogout(ctx context.Context, a *App, s session, args []string) int {
	if err := newFlagSet(a, "logout").Parse(args); err != nil {
		return ExitUsage
	}

	s.mgr.Logout(ctx)
	fmt.Fprintln(a.stdout, "signed out")
	return ExitOK
}

func printUser(w io.Writer, mgr *authsession.Manager) {
	user, ok := mgr.CurrentUser()
	if !ok {
		fmt.Fprintln(w, "not signed in")
		return
	}
	fmt.Fprintf(w, "signed in as %s (id %d)\n", user.Email, user.ID)
}
