package authsession_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SaadSolutions/social/pkg/apiclient"
	"github.com/SaadSolutions/social/pkg/authsession"
	"github.com/SaadSolutions/social/pkg/broadcast"
	"github.com/SaadSolutions/social/pkg/kvstore"
	"github.com/SaadSolutions/social/pkg/logger"
)

// mockAPI mocks Post and keeps default headers in a map.
type mockAPI struct {
	mock.Mock

	mu      sync.Mutex
	headers map[string]string
}

func newMockAPI() *mockAPI {
	return &mockAPI{headers: map[string]string{}}
}

func (m *mockAPI) Post(ctx context.Context, path string, body any) (*apiclient.Response, error) {
	args := m.Called(ctx, path, body)
	resp, _ := args.Get(0).(*apiclient.Response)
	return resp, args.Error(1)
}

func (m *mockAPI) SetHeader(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.headers[key] = value
}

func (m *mockAPI) DeleteHeader(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.headers, key)
}

func (m *mockAPI) header(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.headers[key]
	return v, ok
}

func jsonResponse(status int, body string) *apiclient.Response {
	return &apiclient.Response{Status: status, Body: []byte(body)}
}

// faultyStore is a MemoryStore with injectable failures.
type faultyStore struct {
	*kvstore.MemoryStore

	mu      sync.Mutex
	getErr  map[string]error
	setErr  error
	deletes [][]string
}

func newFaultyStore(seed map[string]string) *faultyStore {
	return &faultyStore{MemoryStore: kvstore.NewMemoryStore(seed), getErr: map[string]error{}}
}

func (s *faultyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	err := s.getErr[key]
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *faultyStore) SetMany(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStore.SetMany(ctx, values)
}

func (s *faultyStore) DeleteMany(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, keys)
	s.mu.Unlock()
	return s.MemoryStore.DeleteMany(ctx, keys...)
}

func (s *faultyStore) deleteCalls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.deletes...)
}

type broadcastMsg = broadcast.Message[authsession.State]

var errDiskFull = errors.New("disk full")

type fixture struct {
	store   *faultyStore
	api     *mockAPI
	manager *authsession.Manager
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()

	logs := &bytes.Buffer{}
	f := &fixture{
		store: newFaultyStore(seed),
		api:   newMockAPI(),
		logs:  logs,
	}
	f.manager = authsession.New(f.store, f.api, authsession.WithLogger(logger.New(
		logger.WithOutput(logs),
		logger.WithFormat(logger.FormatJSON),
		logger.WithLevel(slog.LevelDebug),
	)))
	t.Cleanup(func() { _ = f.manager.Close() })
	return f
}

// drain collects snapshots until none arrives for a short while.
func drain(t *testing.T, ch <-chan broadcastMsg) []authsession.State {
	t.Helper()
	var states []authsession.State
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return states
			}
			states = append(states, msg.Data)
		case <-time.After(50 * time.Millisecond):
			return states
		}
	}
}

func requireStored(t *testing.T, s *faultyStore, want map[string]string) {
	t.Helper()
	got := s.Snapshot()
	require.Len(t, got, len(want), "stored keys: %v", got)
	for k, v := range want {
		require.Contains(t, got, k)
		if k == authsession.UserKey {
			require.JSONEq(t, v, got[k])
			continue
		}
		require.Equal(t, v, got[k])
	}
}
