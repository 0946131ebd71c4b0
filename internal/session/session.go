package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/api"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/storage"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/logger"
)

// adminRole is the server role string that maps to User.IsAdmin.
const adminRole = "ADMIN"

// The three persisted keys. Together with the cart key they are the whole
// on-disk contract.
const (
	userKey    = "user"
	tokenKey   = "token"
	refreshKey = "refreshToken"
)

// Store caches the outcome of server-side authentication so the rest of
// the client gets synchronous predicates and headers. Auth operations
// return booleans, never errors; the last failure message is kept for
// display.
type Store struct {
	mu      sync.Mutex
	kv      storage.Store
	api     *api.Client
	user    *models.User
	lastErr string
}

func New(kv storage.Store, client *api.Client) *Store {
	return &Store{kv: kv, api: client}
}

// Initialize restores the session cache from persistent storage. Run once
// at startup. Corrupt state purges all three keys and starts logged out;
// it never fails the application.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, errUser := s.kv.Get(userKey)
	_, errToken := s.kv.Get(tokenKey)
	if errUser != nil || errToken != nil {
		return
	}

	var u models.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		logger.Warnf("session: purging corrupt persisted session: %v", err)
		s.purgeLocked()
		return
	}
	s.user = &u
}

// Login authenticates against the backend. On success all three keys are
// persisted together (token and refresh token only when present in the
// response) and the in-memory user is updated. On any failure nothing is
// mutated and the message is kept for LastError.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.recordFailure("login failed", err)
		return false
	}
	s.adopt(resp)
	return true
}

// Register has the same contract as Login with a registration payload.
func (s *Store) Register(ctx context.Context, reg api.Registration) bool {
	resp, err := s.api.Register(ctx, reg)
	if err != nil {
		s.recordFailure("registration failed", err)
		return false
	}
	s.adopt(resp)
	return true
}

// RefreshAccessToken mints a new bearer token from the cached refresh
// token. Without one it returns false and makes no network call. A failed
// refresh leaves the session untouched — only logout or the caller's 401
// handling ends a session.
func (s *Store) RefreshAccessToken(ctx context.Context) bool {
	s.mu.Lock()
	refresh, err := s.kv.Get(refreshKey)
	s.mu.Unlock()
	if err != nil || refresh == "" {
		return false
	}

	token, err := s.api.RefreshToken(ctx, refresh)
	if err != nil {
		logger.Debugf("session: token refresh failed: %v", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(tokenKey, token); err != nil {
		logger.Warnf("session: persisting refreshed token failed: %v", err)
		return false
	}
	return true
}

// Logout notifies the backend best-effort, then unconditionally clears the
// persisted keys and the in-memory user. Local logout never fails.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token, _ := s.kv.Get(tokenKey)
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			logger.Debugf("session: logout notification failed: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
}

// IsAuthenticated couples the in-memory user with a token read from
// storage on every call. A token cleared out-of-band flips this to false
// immediately even while the user object is still cached.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	token, err := s.kv.Get(tokenKey)
	return err == nil && token != ""
}

// AuthHeaders returns the Authorization header for the current token, or
// an empty map without one. Pure function of current storage.
func (s *Store) AuthHeaders() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := s.kv.Get(tokenKey)
	if err != nil || token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// CurrentUser returns a copy of the cached user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LastError returns the human-readable message from the most recent failed
// login or registration.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) adopt(resp *api.LoginResponse) {
	u := models.User{
		Username: resp.Username,
		Email:    resp.Email,
		IsAdmin:  resp.Role == adminRole,
		UserID:   resp.UserID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(u)
	if err == nil {
		if err := s.kv.Set(userKey, string(b)); err != nil {
			logger.Warnf("session: persisting user failed: %v", err)
		}
	}
	if resp.Token != "" {
		if err := s.kv.Set(tokenKey, resp.Token); err != nil {
			logger.Warnf("session: persisting token failed: %v", err)
		}
	}
	if resp.RefreshToken != "" {
		if err := s.kv.Set(refreshKey, resp.RefreshToken); err != nil {
			logger.Warnf("session: persisting refresh token failed: %v", err)
		}
	}
	s.user = &u
	s.lastErr = ""
}

func (s *Store) recordFailure(prefix string, err error) {
	msg := prefix
	var apiErr *api.Error
	if ok := asAPIError(err, &apiErr); ok {
		msg = prefix + ": " + apiErr.Message
	} else if err != nil {
		msg = prefix + ": " + err.Error()
	}
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func asAPIError(err error, target **api.Error) bool {
	return err != nil && errors.As(err, target)
}

func (s *Store) purgeLocked() {
	_ = s.kv.Remove(userKey)
	_ = s.kv.Remove(tokenKey)
	_ = s.kv.Remove(refreshKey)
	s.user = nil
}
