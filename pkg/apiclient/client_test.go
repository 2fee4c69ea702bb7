package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/logger"
	"github.com/SaadSolutions/social/pkg/requestid"
)

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "localhost:3000", "ftp://host", "http://"} {
		_, err := apiclient.New(raw)
		assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL, raw)
	}
}

func TestClient_Post(t *testing.T) {
	t.Parallel()

	type captured struct {
		req  *http.Request
		body map[string]string
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		seen <- captured{req: r.Clone(context.Background()), body: body}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL+"/api/", apiclient.WithUserAgent("test-agent"))
	require.NoError(t, err)
	c.SetHeader("Authorization", "Bearer tok1")

	ctx := requestid.WithContext(context.Background(), "req-1")
	resp, err := c.Post(ctx, "/auth/login", map[string]string{"email": "a@b.com", "password": "secret"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.True(t, resp.OK())
	assert.True(t, resp.IsJSON())
	assert.Equal(t, "application/json", resp.ContentType())

	capt := <-seen
	got, gotBody := capt.req, capt.body
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/auth/login", got.URL.Path)
	assert.Equal(t, "Bearer tok1", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "test-agent", got.Header.Get("User-Agent"))
	assert.Equal(t, "req-1", got.Header.Get(requestid.Header))
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "secret"}, gotBody)
}

func TestClient_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(requestid.Header)
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "me")
	require.NoError(t, err)
	id := <-ids
	assert.True(t, requestid.Valid(id), id)
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		auth = append(auth, r.Header.Get("Authorization"))
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL, apiclient.WithHeader("X-App", "social"))
	require.NoError(t, err)
	assert.Equal(t, "social", c.Header("X-App"))

	c.SetHeader("Authorization", "Bearer a")
	_, err = c.Get(context.Background(), "/me")
	require.NoError(t, err)

	c.DeleteHeader("Authorization")
	c.DeleteHeader("Authorization")
	_, err = c.Get(context.Background(), "/me")
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, []string{"Bearer a", ""}, auth)
	mu.Unlock()
	assert.Empty(t, c.Header("Authorization"))

	h := c.Headers()
	h.Set("X-App", "changed")
	assert.Equal(t, "social", c.Header("X-App"), "Headers returns a copy")
}

func TestClient_NonSuccessIsResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"msg":"Invalid credentials"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "/auth/login", struct{}{})
	require.NoError(t, err)
	assert.False(t, resp.OK())

	var body struct{ Msg string }
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "Invalid credentials", body.Msg)
}

func TestResponse_Decode(t *testing.T) {
	t.Parallel()

	r := &apiclient.Response{Status: 502, Body: []byte("<html>bad gateway</html>")}
	assert.False(t, r.IsJSON())
	assert.ErrorIs(t, r.Decode(&struct{}{}), apiclient.ErrNotJSON)

	r = &apiclient.Response{Status: 200, Body: []byte(`{"id":"x"}`)}
	var v struct{ ID int }
	assert.ErrorIs(t, r.Decode(&v), apiclient.ErrDecode)

	r = &apiclient.Response{Status: 204}
	assert.False(t, r.IsJSON())
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := apiclient.New(url)
	require.NoError(t, err)
	_, err = c.Post(context.Background(), "/auth/login", nil)
	assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
}

func TestClient_RetriesOnlyWithoutResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if assert.NoError(t, err) {
				_ = conn.Close()
			}
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"msg":"boom"}`)
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL,
		apiclient.WithRetries(3),
		apiclient.WithBackoff(apiclient.ConstantBackoff{Interval: time.Millisecond}),
	)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, int32(2), calls.Load(), "5xx response is not retried")
}

func TestClient_PostNotResentAfterConnect(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		conn, _, err := w.(http.Hijacker).Hijack()
		if assert.NoError(t, err) {
			_ = conn.Close()
		}
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL,
		apiclient.WithRetries(3),
		apiclient.WithBackoff(apiclient.ConstantBackoff{Interval: time.Millisecond}),
	)
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/auth/signup", map[string]string{"email": "a@b.com"})
	assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
	assert.Equal(t, int32(1), calls.Load(), "the server may have created the account")
}

func TestClient_PostRetriedWhenDialFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	var logs bytes.Buffer
	c, err := apiclient.New(url,
		apiclient.WithRetries(2),
		apiclient.WithBackoff(apiclient.ConstantBackoff{Interval: time.Millisecond}),
		apiclient.WithLogger(logger.New(
			logger.WithOutput(&logs),
			logger.WithFormat(logger.FormatText),
			logger.WithLevel(slog.LevelDebug),
		)),
	)
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/auth/signup", map[string]string{})
	assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
	assert.Equal(t, 2, strings.Count(logs.String(), "retrying request"))
}

func TestClient_MaxBodySize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 64))
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL, apiclient.WithMaxBodySize(16), apiclient.WithRetries(2))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/")
	assert.ErrorIs(t, err, apiclient.ErrBodyTooLarge)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := apiclient.New(srv.URL, apiclient.WithRetries(5))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, "/slow")
	assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	c, err := apiclient.NewFromConfig(apiclient.Config{BaseURL: "http://example.com/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/v1", c.BaseURL())
}
