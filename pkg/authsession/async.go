package authsession

import (
	"context"

	"github.com/SaadSolutions/social/pkg/async"
)

// RestoreAsync runs Restore in the background. The future resolves to the
// state right after Restore finished.
func (m *Manager) RestoreAsync(ctx context.Context) *async.Future[State] {
	return async.Go(ctx, func(ctx context.Context) (State, error) {
		m.Restore(ctx)
		return m.State(), nil
	})
}

// LoginAsync runs Login in the background. The future resolves to the
// resulting state, or to the *AuthError.
func (m *Manager) LoginAsync(ctx context.Context, email, password string) *async.Future[State] {
	return async.Go(ctx, func(ctx context.Context) (State, error) {
		if err := m.Login(ctx, email, password); err != nil {
			return State{}, err
		}
		return m.State(), nil
	})
}

// SignupAsync is the background form of Signup.
func (m *Manager) SignupAsync(ctx context.Context, email, password string) *async.Future[State] {
	return async.Go(ctx, func(ctx context.Context) (State, error) {
		if err := m.Signup(ctx, email, password); err != nil {
			return State{}, err
		}
		return m.State(), nil
	})
}
