package authsession_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/authsession"
)

const okBody = `{"token":"tok1","user":{"id":7,"email":"a@b.com"}}`

func credentialsMatch(email, password string) any {
	return mock.MatchedBy(func(body any) bool {
		// Compare through the JSON the API client would send.
		data, err := json.Marshal(body)
		if err != nil {
			return false
		}
		resp := &apiclient.Response{Body: data}
		var got struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		return resp.Decode(&got) == nil && got.Email == email && got.Password == password
	})
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/login", credentialsMatch("a@b.com", " pw ")).
		Return(jsonResponse(http.StatusOK, okBody), nil).Once()

	err := f.manager.Login(context.Background(), "  a@b.com\t", " pw ")
	require.NoError(t, err)
	f.api.AssertExpectations(t)

	st := f.manager.State()
	assert.Equal(t, "tok1", st.Token)
	assert.Equal(t, &authsession.User{ID: 7, Email: "a@b.com"}, st.User)
	assert.False(t, st.IsLoading)

	header, _ := f.api.header(authsession.AuthorizationHeader)
	assert.Equal(t, "Bearer tok1", header)

	got := f.store.Snapshot()
	assert.Equal(t, "tok1", got[authsession.TokenKey])
	assert.Equal(t, `{"id":7,"email":"a@b.com"}`, got[authsession.UserKey])
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/signup", credentialsMatch("new@b.com", "secret")).
		Return(jsonResponse(http.StatusCreated, `{"token":"tok9","user":{"id":9,"email":"new@b.com"}}`), nil).Once()

	require.NoError(t, f.manager.Signup(context.Background(), "new@b.com", "secret"))

	user, ok := f.manager.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(9), user.ID)
	requireStored(t, f.store, map[string]string{
		authsession.TokenKey: "tok9",
		authsession.UserKey:  `{"id":9,"email":"new@b.com"}`,
	})
}

func TestLogin_EmptyCredentialsAreSent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/login", credentialsMatch("", "")).
		Return(jsonResponse(http.StatusBadRequest, `{"msg":"Email and password required"}`), nil).Once()

	err := f.manager.Login(context.Background(), "   ", "")
	require.Error(t, err)
	assert.Equal(t, "Email and password required", err.Error())
	f.api.AssertExpectations(t)
}

func TestAuthenticate_Failures(t *testing.T) {
	t.Parallel()

	type outcome struct {
		kind    error
		message string
		status  int
	}

	cases := []struct {
		name   string
		op     string
		resp   *apiclient.Response
		err    error
		expect outcome
	}{
		{
			name:   "server message",
			op:     "login",
			resp:   jsonResponse(http.StatusUnauthorized, `{"msg":"Invalid credentials"}`),
			expect: outcome{authsession.ErrRejected, "Invalid credentials", http.StatusUnauthorized},
		},
		{
			name:   "failure without message",
			op:     "login",
			resp:   jsonResponse(http.StatusInternalServerError, `{}`),
			expect: outcome{authsession.ErrRejected, "Login failed", http.StatusInternalServerError},
		},
		{
			name:   "blank message",
			op:     "signup",
			resp:   jsonResponse(http.StatusConflict, `{"msg":"  "}`),
			expect: outcome{authsession.ErrRejected, "Signup failed", http.StatusConflict},
		},
		{
			name:   "non-string message",
			op:     "signup",
			resp:   jsonResponse(http.StatusConflict, `{"msg":42}`),
			expect: outcome{authsession.ErrRejected, "Signup failed", http.StatusConflict},
		},
		{
			name:   "success without payload",
			op:     "login",
			resp:   jsonResponse(http.StatusOK, `{"ok":true}`),
			expect: outcome{authsession.ErrRejected, "Login failed", http.StatusOK},
		},
		{
			name:   "success with message but no payload",
			op:     "signup",
			resp:   jsonResponse(http.StatusOK, `{"msg":"Check your inbox"}`),
			expect: outcome{authsession.ErrRejected, "Check your inbox", http.StatusOK},
		},
		{
			name:   "empty token",
			op:     "login",
			resp:   jsonResponse(http.StatusOK, `{"token":"","user":{"id":7,"email":"a@b.com"}}`),
			expect: outcome{authsession.ErrRejected, "Login failed", http.StatusOK},
		},
		{
			name:   "user without email",
			op:     "login",
			resp:   jsonResponse(http.StatusOK, `{"token":"tok1","user":{"id":7}}`),
			expect: outcome{authsession.ErrRejected, "Login failed", http.StatusOK},
		},
		{
			name:   "wrong field types",
			op:     "login",
			resp:   jsonResponse(http.StatusOK, `{"token":1,"user":"x","msg":"bad shape"}`),
			expect: outcome{authsession.ErrRejected, "bad shape", http.StatusOK},
		},
		{
			name:   "html error page",
			op:     "login",
			resp:   &apiclient.Response{Status: http.StatusBadGateway, Body: []byte("<html>502</html>")},
			expect: outcome{authsession.ErrTransport, "Network error during login", http.StatusBadGateway},
		},
		{
			name:   "empty body",
			op:     "signup",
			resp:   &apiclient.Response{Status: http.StatusOK},
			expect: outcome{authsession.ErrTransport, "Network error during signup", http.StatusOK},
		},
		{
			name:   "no response",
			op:     "login",
			err:    errors.Join(apiclient.ErrRequestFailed, errors.New("dial tcp: connection refused")),
			expect: outcome{authsession.ErrTransport, "Network error during login", 0},
		},
		{
			name:   "no response signup",
			op:     "signup",
			err:    errors.Join(apiclient.ErrRequestFailed, errors.New("i/o timeout")),
			expect: outcome{authsession.ErrTransport, "Network error during signup", 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Start from an existing session so "unchanged" is observable.
			seed := map[string]string{
				authsession.TokenKey: "old",
				authsession.UserKey:  `{"id":1,"email":"old@b.com"}`,
			}
			f := newFixture(t, seed)
			f.manager.Restore(context.Background())
			before := f.manager.State()
			require.True(t, before.IsAuthenticated())

			f.api.On("Post", mock.Anything, "/auth/"+tc.op, mock.Anything).Return(tc.resp, tc.err).Once()

			var err error
			if tc.op == "login" {
				err = f.manager.Login(context.Background(), "a@b.com", "pw")
			} else {
				err = f.manager.Signup(context.Background(), "a@b.com", "pw")
			}
			require.Error(t, err)

			var authErr *authsession.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tc.op, authErr.Op)
			assert.Equal(t, tc.expect.message, err.Error())
			assert.Equal(t, tc.expect.status, authErr.Status)
			assert.ErrorIs(t, err, tc.expect.kind)

			if tc.err != nil {
				assert.ErrorIs(t, err, apiclient.ErrRequestFailed, "cause stays reachable")
				assert.NotContains(t, err.Error(), "dial tcp")
			}

			assert.Equal(t, before, f.manager.State())
			requireStored(t, f.store, seed)
			header, _ := f.api.header(authsession.AuthorizationHeader)
			assert.Equal(t, "Bearer old", header)
		})
	}
}

func TestLogin_StoreFailureIsLogged(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.store.setErr = errDiskFull
	f.api.On("Post", mock.Anything, "/auth/login", mock.Anything).
		Return(jsonResponse(http.StatusOK, okBody), nil).Once()

	require.NoError(t, f.manager.Login(context.Background(), "a@b.com", "pw"))

	assert.True(t, f.manager.IsAuthenticated(), "in-memory session stands")
	assert.Empty(t, f.store.Snapshot(), "no partial pair")
	assert.Contains(t, f.logs.String(), "persist session")
	assert.Contains(t, f.logs.String(), "disk full")
}

func TestLogin_TransitionsAreObservable(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	sub := f.manager.Subscribe(context.Background())

	f.api.On("Post", mock.Anything, "/auth/login", mock.Anything).
		Run(func(mock.Arguments) {
			assert.True(t, f.manager.IsLoading(), "loading while the request is in flight")
		}).
		Return(jsonResponse(http.StatusOK, okBody), nil).Once()

	require.NoError(t, f.manager.Login(context.Background(), "a@b.com", "pw"))

	states := drain(t, sub.Receive(context.Background()))
	require.Len(t, states, 3)
	assert.True(t, states[0].IsLoading)
	assert.False(t, states[0].IsAuthenticated())
	assert.True(t, states[1].IsAuthenticated())
	assert.False(t, states[2].IsLoading)
	assert.Equal(t, "tok1", states[2].Token)
}

func TestLogin_FailureResetsLoading(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/login", mock.Anything).
		Return(nil, errors.New("offline")).Once()

	require.Error(t, f.manager.Login(context.Background(), "a@b.com", "pw"))
	assert.False(t, f.manager.IsLoading())
}

func TestLogin_NilResponseIsTransport(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/login", mock.Anything).Return(nil, nil).Once()

	err := f.manager.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, authsession.ErrTransport)
}

func TestLoginAsync(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/login", mock.Anything).
		Return(jsonResponse(http.StatusOK, okBody), nil).Once()

	st, err := f.manager.LoginAsync(context.Background(), "a@b.com", "pw").Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok1", st.Token)
	assert.False(t, st.IsLoading)
}

func TestSignupAsync_Failure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.api.On("Post", mock.Anything, "/auth/signup", mock.Anything).
		Return(jsonResponse(http.StatusConflict, `{"msg":"User already exists"}`), nil).Once()

	fut := f.manager.SignupAsync(context.Background(), "a@b.com", "pw")
	<-fut.Done()
	_, err := fut.Result()
	assert.ErrorIs(t, err, authsession.ErrRejected)
	assert.Equal(t, "User already exists", err.Error())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		authsession.TokenKey: "tok1",
		authsession.UserKey:  `{"id":7,"email":"a@b.com"}`,
		"unrelated":          "kept",
	})
	f.manager.Restore(context.Background())
	require.True(t, f.manager.IsAuthenticated())

	f.manager.Logout(context.Background())

	assert.False(t, f.manager.IsAuthenticated())
	_, ok := f.manager.CurrentUser()
	assert.False(t, ok)
	_, ok = f.api.header(authsession.AuthorizationHeader)
	assert.False(t, ok)
	requireStored(t, f.store, map[string]string{"unrelated": "kept"})

	assert.NotPanics(t, func() { f.manager.Logout(context.Background()) })
	assert.False(t, f.manager.IsAuthenticated())
	assert.Len(t, f.store.deleteCalls(), 2)
}

func TestLogout_CancelledContextStillClears(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]string{
		authsession.TokenKey: "tok1",
		authsession.UserKey:  `{"id":7,"email":"a@b.com"}`,
	})
	f.manager.Restore(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.manager.Logout(ctx)

	assert.False(t, f.manager.IsAuthenticated())
	assert.Empty(t, f.store.Snapshot())
}

func TestAuthError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &authsession.AuthError{Op: "login", Kind: authsession.KindTransport, Message: "Network error during login", Err: cause}
	assert.Equal(t, "Network error during login", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, authsession.ErrTransport)
	assert.NotErrorIs(t, err, authsession.ErrRejected)
	assert.Equal(t, "transport", authsession.KindTransport.String())
	assert.Equal(t, "rejected", authsession.KindRejected.String())
	assert.True(t, strings.HasPrefix(authsession.Kind(9).String(), "Kind("))

	var nilErr *authsession.AuthError
	assert.Equal(t, "authentication failed", nilErr.Error())
}
