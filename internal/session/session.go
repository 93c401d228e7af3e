// Package session holds the process-wide authentication state: the API
// token and the signed-in user's profile, mirrored to durable storage.
package session

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/refundesk/refundesk/pkg/domain"
)

// Durable storage keys.
const (
	keyToken = "token"
	keyUser  = "user.json"
)

// Store is the single source of truth for "who is logged in". It is
// safe for concurrent use; TUI commands run on their own goroutines.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *domain.User
	storage Storage
	log     *zap.Logger
}

// NewStore creates an empty session store backed by storage.
func NewStore(storage Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{storage: storage, log: log}
}

// Load rehydrates token and user from durable storage. Corrupt data is
// logged and dropped; the store just stays unauthenticated.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok, err := s.storage.Get(keyToken); err != nil {
		s.log.Warn("session: read token", zap.Error(err))
	} else if ok {
		s.token = strings.TrimSpace(string(data))
	}

	data, ok, err := s.storage.Get(keyUser)
	if err != nil {
		s.log.Warn("session: read user", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn("session: corrupt user profile, discarding", zap.Error(err))
		return
	}
	s.user = &user
}

// SetToken updates the token and mirrors it to durable storage; an
// empty token removes the stored key.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if token == "" {
		if err := s.storage.Delete(keyToken); err != nil {
			s.log.Warn("session: delete token", zap.Error(err))
		}
		return
	}
	if err := s.storage.Set(keyToken, []byte(token)); err != nil {
		s.log.Warn("session: persist token", zap.Error(err))
	}
}

// SetUser updates the profile and mirrors it to durable storage; a nil
// user removes the stored key.
func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user == nil {
		if err := s.storage.Delete(keyUser); err != nil {
			s.log.Warn("session: delete user", zap.Error(err))
		}
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("session: encode user", zap.Error(err))
		return
	}
	if err := s.storage.Set(keyUser, data); err != nil {
		s.log.Warn("session: persist user", zap.Error(err))
	}
}

// Logout clears both fields and removes both durable keys. The token is
// stateless, so no server call is involved.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	if err := s.storage.Delete(keyToken); err != nil {
		s.log.Warn("session: delete token", zap.Error(err))
	}
	if err := s.storage.Delete(keyUser); err != nil {
		s.log.Warn("session: delete user", zap.Error(err))
	}
	s.log.Info("session: logged out")
}

// Token returns the current API token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user's profile, or nil.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated is derived purely from token presence.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
