// Package session owns the authentication token and user profile, and keeps
// them in a durable store between runs.
package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/constants"
	"github.com/Paintersrp/noted/internal/storage"
)

var ErrNoSession = errors.New("not signed in")

type UserProfile struct {
	ID    string `json:"user_id,omitempty"`
	Name  string `json:"user_name,omitempty"`
	Email string `json:"user_email,omitempty"`
}

// Session is a snapshot. User is only meaningful when Token is set.
type Session struct {
	Token string
	User  *UserProfile
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Store struct {
	mu     sync.RWMutex
	kv     storage.Store
	logger *zap.Logger
	token  string
	user   *UserProfile

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Session)
}

func New(kv storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:     kv,
		logger: logger,
		subs:   make(map[int]func(Session)),
	}
	s.token, s.user = s.read()
	return s
}

// read loads token and user from the durable store. A user entry that does not
// decode is dropped from the store and the token is kept.
func (s *Store) read() (string, *UserProfile) {
	token, err := s.kv.Get(constants.TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read stored token failed", zap.Error(err))
		}
		return "", nil
	}

	raw, err := s.kv.Get(constants.UserKey)
	if err != nil {
		return token, nil
	}

	var user UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("discarding malformed stored user", zap.Error(err))
		if rmErr := s.kv.Remove(constants.UserKey); rmErr != nil {
			s.logger.Warn("remove malformed stored user failed", zap.Error(rmErr))
		}
		return token, nil
	}
	return token, &user
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, User: copyUser(s.user)}
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores the token, and the user when one is given. The token is not
// inspected; the server decides whether it is valid.
func (s *Store) SetToken(token string, user *UserProfile) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := s.kv.Set(constants.TokenKey, token); err != nil {
		return errors.Wrap(err, "persist token failed")
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return errors.Wrap(err, "encode user failed")
		}
		if err := s.kv.Set(constants.UserKey, string(data)); err != nil {
			return errors.Wrap(err, "persist user failed")
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = copyUser(user)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout clears the token and user everywhere. Safe to call when signed out.
func (s *Store) Logout() error {
	var errs []error
	if err := s.kv.Remove(constants.TokenKey); err != nil {
		errs = append(errs, errors.Wrap(err, "remove token failed"))
	}
	if err := s.kv.Remove(constants.UserKey); err != nil {
		errs = append(errs, errors.Wrap(err, "remove user failed"))
	}

	s.mu.Lock()
	changed := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if changed {
		s.notify()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Reload re-reads the durable store, for when another process changed it.
func (s *Store) Reload() error {
	if d, ok := s.kv.(storage.Durable); ok {
		if err := d.Reload(); err != nil {
			return err
		}
	}

	token, user := s.read()

	s.mu.Lock()
	changed := token != s.token || !sameUser(user, s.user)
	s.token = token
	s.user = user
	s.mu.Unlock()

	if changed {
		s.logger.Debug("session changed on disk", zap.Bool("authenticated", token != ""))
		s.notify()
	}
	return nil
}

// Subscribe registers fn to run after every change. The returned func removes it.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	snapshot := s.Current()

	s.subMu.Lock()
	fns := make([]func(Session), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func copyUser(u *UserProfile) *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func sameUser(a, b *UserProfile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
