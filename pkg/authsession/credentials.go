package authsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/logger"
)

type operation struct {
	name       string
	path       string
	failMsg    string
	networkMsg string
}

var (
	opLogin = operation{
		name:       "login",
		path:       "/auth/login",
		failMsg:    "Login failed",
		networkMsg: "Network error during login",
	}
	opSignup = operation{
		name:       "signup",
		path:       "/auth/signup",
		failMsg:    "Signup failed",
		networkMsg: "Network error during signup",
	}
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *storedUser `json:"user"`
}

var (
	errMissingPayload = errors.New("authsession: success response without token and user")
	errNoResponse     = errors.New("authsession: no response")
)

// Login authenticates with email and password. The email is trimmed; the
// password is sent as given. On success the session is committed. On
// failure the session is left as it was and an *AuthError is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, opLogin, email, password)
}

// Signup registers a new account and, on success, signs it in exactly like
// Login.
func (m *Manager) Signup(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, opSignup, email, password)
}

// Logout clears the session. It is idempotent and never fails.
func (m *Manager) Logout(ctx context.Context) {
	m.clear(ctx)
	m.logger.InfoContext(ctx, "logged out", logger.Operation("logout"))
}

func (m *Manager) authenticate(ctx context.Context, op operation, email, password string) error {
	m.beginLoading(ctx)
	defer m.endLoading(ctx)

	log := m.logger.With(logger.Operation(op.name))
	email = strings.TrimSpace(email)

	resp, err := m.api.Post(ctx, op.path, credentials{Email: email, Password: password})
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		log.WarnContext(ctx, "auth request failed", logger.Error(err))
		return &AuthError{Op: op.name, Kind: KindTransport, Message: op.networkMsg, Err: err}
	}

	token, user, authErr := classify(op, resp)
	if authErr != nil {
		log.WarnContext(ctx, "auth refused",
			logger.Status(resp.Status),
			logger.Error(authErr.Err),
			logger.Email(email),
		)
		return authErr
	}

	m.commit(ctx, token, user)
	log.InfoContext(ctx, "authenticated", logger.UserID(user.ID))
	return nil
}

// classify turns a response into a session or an *AuthError. Only a 2xx
// JSON body with a non-empty token and a user carrying id and email
// succeeds. A body that is not JSON counts as a transport failure whatever
// the status.
func classify(op operation, resp *apiclient.Response) (string, User, *AuthError) {
	if !resp.IsJSON() {
		return "", User{}, &AuthError{
			Op:      op.name,
			Kind:    KindTransport,
			Status:  resp.Status,
			Message: op.networkMsg,
			Err:     apiclient.ErrNotJSON,
		}
	}

	rejected := func(cause error) (string, User, *AuthError) {
		msg := serverMessage(resp.Body)
		if msg == "" {
			msg = op.failMsg
		}
		return "", User{}, &AuthError{
			Op:      op.name,
			Kind:    KindRejected,
			Status:  resp.Status,
			Message: msg,
			Err:     cause,
		}
	}

	if !resp.OK() {
		return rejected(fmt.Errorf("authsession: unexpected status %d", resp.Status))
	}

	var body authResponse
	if err := resp.Decode(&body); err != nil {
		return rejected(err)
	}
	if body.Token == "" || body.User == nil || body.User.ID == nil || body.User.Email == nil {
		return rejected(errMissingPayload)
	}

	return body.Token, User{ID: *body.User.ID, Email: *body.User.Email}, nil
}

// serverMessage extracts a non-blank string "msg" field from a JSON object.
func serverMessage(body []byte) string {
	var payload struct {
		Msg any `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	msg, ok := payload.Msg.(string)
	if !ok || strings.TrimSpace(msg) == "" {
		return ""
	}
	return msg
}
