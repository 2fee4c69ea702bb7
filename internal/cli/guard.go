package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/SaadSolutions/social/pkg/authsession"
	"github.com/SaadSolutions/social/pkg/broadcast"
)

const (
	routeHome    = "/home"
	routeWelcome = "/"
)

// routeFor is the navigation rule of the app shell.
func routeFor(s authsession.State) string {
	if s.IsAuthenticated() {
		return routeHome
	}
	return routeWelcome
}

// routeGuard prints the destination route whenever it changes. Loading
// snapshots are ignored, like the splash screen holding navigation.
type routeGuard struct {
	mgr  *authsession.Manager
	out  io.Writer
	sub  broadcast.Subscriber[authsession.State]
	done chan struct{}

	mu   sync.Mutex
	last string
}

func watchRoutes(ctx context.Context, mgr *authsession.Manager, out io.Writer) *routeGuard {
	g := &routeGuard{
		mgr:  mgr,
		out:  out,
		sub:  mgr.Subscribe(ctx),
		done: make(chan struct{}),
	}
	g.show(mgr.State())

	go func() {
		defer close(g.done)
		for msg := range g.sub.Receive(ctx) {
			g.show(msg.Data)
		}
	}()
	return g
}

// Stop drains pending snapshots and reports the final route.
func (g *routeGuard) Stop() {
	_ = g.sub.Close()
	<-g.done
	g.show(g.mgr.State())
}

func (g *routeGuard) show(s authsession.State) {
	if s.IsLoading {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	route := routeFor(s)
	if route == g.last {
		return
	}
	g.last = route
	fmt.Fprintf(g.out, "route: %s\n", route)
}
