package authsession

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/broadcast"
	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

// Durable store keys and the header the session drives.
const (
	TokenKey            = "auth_token"
	UserKey             = "auth_user"
	AuthorizationHeader = "Authorization"
)

// APIClient is the part of *apiclient.Client the manager needs.
type APIClient interface {
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
	SetHeader(key, value string)
	DeleteHeader(key string)
}

// Manager owns the session state. Create it with New.
type Manager struct {
	store  kvstore.Store
	api    APIClient
	logger *slog.Logger
	events *broadcast.MemoryBroadcaster[State]

	mu      sync.Mutex
	token   string
	user    *User
	loading int
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	bufferSize int
}

// WithLogger sets the logger; swallowed errors are reported through it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSubscriberBuffer sets how many snapshots a subscriber may queue before
// older ones are dropped.
func WithSubscriberBuffer(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// New creates an unauthenticated Manager. It panics if store or api is nil.
func New(store kvstore.Store, api APIClient, opts ...Option) *Manager {
	if store == nil {
		panic("authsession: nil store")
	}
	if api == nil {
		panic("authsession: nil api client")
	}

	o := options{logger: logger.Discard(), bufferSize: 8}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{
		store:  store,
		api:    api,
		logger: o.logger.With(logger.Component("authsession")),
		events: broadcast.NewMemoryBroadcaster[State](o.bufferSize),
	}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

func (m *Manager) CurrentUser() (User, bool) {
	return m.State().CurrentUser()
}

// IsLoading reports whether a restore, login or signup is in flight.
func (m *Manager) IsLoading() bool {
	return m.State().IsLoading
}

// Subscribe streams a snapshot after every state change until ctx ends or
// the subscriber is closed.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[State] {
	return m.events.Subscribe(ctx)
}

// Close ends all subscriptions. The Manager stays usable.
func (m *Manager) Close() error {
	return m.events.Close()
}

func (m *Manager) snapshotLocked() State {
	s := State{Token: m.token, IsLoading: m.loading > 0}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// publishLocked must be called with m.mu held so subscribers see changes in
// the order they were made.
func (m *Manager) publishLocked(ctx context.Context) {
	_ = m.events.Broadcast(ctx, broadcast.Message[State]{Data: m.snapshotLocked()})
}

func (m *Manager) beginLoading(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading++
	m.publishLocked(ctx)
}

func (m *Manager) endLoading(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading > 0 {
		m.loading--
	}
	m.publishLocked(ctx)
}
