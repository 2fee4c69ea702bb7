package authsession

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

// commit installs a new session. State, store and header change together
// under the lock. A store failure is logged; the in-memory session stands.
func (m *Manager) commit(ctx context.Context, token string, user User) {
	record, err := encodeUser(user)
	if err != nil {
		m.logger.ErrorContext(ctx, "encode user record", logger.Error(err), logger.UserID(user.ID))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.user = &user

	// The caller's cancellation must not leave memory and storage apart.
	persistCtx := context.WithoutCancel(ctx)
	if err == nil {
		if err := kvstore.SetMany(persistCtx, m.store, map[string]string{
			TokenKey: token,
			UserKey:  record,
		}); err != nil {
			m.logger.ErrorContext(ctx, "persist session", logger.Error(err), logger.UserID(user.ID))
		}
	}

	m.api.SetHeader(AuthorizationHeader, "Bearer "+token)
	m.publishLocked(ctx)
}

// clear drops the session from memory, storage and the API client.
func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.user = nil
	m.purgeLocked(ctx)
	m.api.DeleteHeader(AuthorizationHeader)
	m.publishLocked(ctx)
}

// purgeLocked deletes both persisted keys. Must hold m.mu.
func (m *Manager) purgeLocked(ctx context.Context) {
	if err := kvstore.DeleteMany(context.WithoutCancel(ctx), m.store, TokenKey, UserKey); err != nil {
		m.logger.ErrorContext(ctx, "delete persisted session", logger.Error(err))
	}
}

var errMalformedUser = errors.New("authsession: malformed user record")

// storedUser uses pointers so absent fields are detected.
type storedUser struct {
	ID    *int64  `json:"id"`
	Email *string `json:"email"`
}

func encodeUser(u User) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeUser(raw string) (User, error) {
	var su storedUser
	if err := json.Unmarshal([]byte(raw), &su); err != nil {
		return User{}, errors.Join(errMalformedUser, err)
	}
	if su.ID == nil || su.Email == nil {
		return User{}, errMalformedUser
	}
	return User{ID: *su.ID, Email: *su.Email}, nil
}
