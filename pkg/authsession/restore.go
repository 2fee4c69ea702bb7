package authsession

import (
	"context"
	"errors"

	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

// Restore loads a persisted session. It never fails: a complete, valid pair
// becomes the current session and sets the Authorization header; a partial
// or unreadable pair is deleted; an empty store leaves the session as is.
// A store that cannot be read at all is logged and left untouched.
//
// Call it once at startup before any other operation.
func (m *Manager) Restore(ctx context.Context) {
	m.beginLoading(ctx)
	defer m.endLoading(ctx)

	log := m.logger.With(logger.Operation("restore"))

	token, hasToken, tokenErr := m.load(ctx, TokenKey)
	record, hasUser, userErr := m.load(ctx, UserKey)

	corrupt := errors.Is(tokenErr, kvstore.ErrCorruptValue) || errors.Is(userErr, kvstore.ErrCorruptValue)
	if err := errors.Join(tokenErr, userErr); err != nil && !corrupt {
		log.ErrorContext(ctx, "read persisted session", logger.Error(err))
		return
	}

	switch {
	case corrupt:
		log.WarnContext(ctx, "persisted session is corrupt, clearing", logger.Error(errors.Join(tokenErr, userErr)))
		m.purge(ctx)
		return
	case !hasToken && !hasUser:
		log.DebugContext(ctx, "no persisted session")
		return
	case hasToken != hasUser:
		log.WarnContext(ctx, "persisted session is incomplete, clearing",
			logger.Key(missingKey(hasToken)))
		m.purge(ctx)
		return
	}

	user, err := decodeUser(record)
	if err != nil {
		log.WarnContext(ctx, "persisted user record is malformed, clearing", logger.Error(err))
		m.purge(ctx)
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = &user
	m.api.SetHeader(AuthorizationHeader, "Bearer "+token)
	m.publishLocked(ctx)
	m.mu.Unlock()

	log.InfoContext(ctx, "session restored", logger.UserID(user.ID))
}

// load treats an empty stored value as absent.
func (m *Manager) load(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return v, ok && v != "", nil
}

func (m *Manager) purge(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeLocked(ctx)
}

func missingKey(hasToken bool) string {
	if hasToken {
		return UserKey
	}
	return TokenKey
}
