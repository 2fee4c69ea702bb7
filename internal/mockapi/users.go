package mockapi

import (
	"strings"
	"sync"
)

// User is an account as the API exposes it.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type account struct {
	user User
	hash []byte
}

// userStore keeps accounts in memory, keyed by normalized email.
type userStore struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]*account
	byID    map[int64]*account
}

func newUserStore() *userStore {
	return &userStore{
		nextID:  1,
		byEmail: make(map[string]*account),
		byID:    make(map[int64]*account),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userStore) create(email string, hash []byte) (User, error) {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return User{}, ErrEmailTaken
	}

	acc := &account{user: User{ID: s.nextID, Email: key}, hash: hash}
	s.nextID++
	s.byEmail[key] = acc
	s.byID[acc.user.ID] = acc
	return acc.user, nil
}

func (s *userStore) byEmailKey(email string) (account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return account{}, false
	}
	return *acc, true
}

func (s *userStore) get(id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	return acc.user, true
}

func (s *userStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
