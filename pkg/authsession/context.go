package authsession

import "context"

type managerKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, m)
}

// FromContext returns the Manager stored by WithManager.
func FromContext(ctx context.Context) (*Manager, bool) {
	if ctx == nil {
		return nil, false
	}
	m, ok := ctx.Value(managerKey{}).(*Manager)
	return m, ok && m != nil
}

// MustFromContext is FromContext for code that cannot run without a
// session. It panics with ErrNoManager when none is set.
func MustFromContext(ctx context.Context) *Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoManager)
	}
	return m
}
