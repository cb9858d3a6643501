package client

import (
	"context"
	"errors"
	"sync"
)

// AuthState is a snapshot of the auth store, safe to hand to callers.
type AuthState struct {
	User          *User
	Authenticated bool
	Loading       bool
	Err           string
}

func (s AuthState) IsMentor() bool {
	return s.User != nil && s.User.Role == RoleMentor
}

func (s AuthState) IsStudent() bool {
	return s.User != nil && s.User.Role == RoleStudent
}

// AuthStore owns the signed-in identity. It persists the user to a
// UserCache so a restart (or an unreachable server) still knows who was
// signed in, and it clears everything when the server reports the
// session expired.
type AuthStore struct {
	api   *Client
	cache UserCache

	mu    sync.Mutex
	state AuthState
}

func NewAuthStore(api *Client, cache UserCache) *AuthStore {
	s := &AuthStore{
		api:   api,
		cache: cache,
		state: AuthState{Loading: true},
	}
	api.OnAuthExpired(s.forceLogout)
	return s
}

func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// authPayload is what login and register hand back.
type authPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *AuthStore) Login(ctx context.Context, creds Credentials) ActionResult {
	var payload authPayload
	err := s.api.post(ctx, "/api/auth/login", creds, &payload)
	if err != nil {
		return s.failWrite(err, "Login failed")
	}
	s.signedIn(payload.User)
	return ActionResult{Success: true, Message: "Logged in successfully"}
}

func (s *AuthStore) Register(ctx context.Context, reg Registration) ActionResult {
	var payload authPayload
	err := s.api.post(ctx, "/api/auth/register", reg, &payload)
	if err != nil {
		return s.failWrite(err, "Registration failed")
	}
	s.signedIn(payload.User)
	return ActionResult{Success: true, Message: "Account created successfully"}
}

// Logout signs out server-side on a best-effort basis; local state and
// the cache are cleared regardless.
func (s *AuthStore) Logout(ctx context.Context) {
	_ = s.api.post(ctx, "/api/auth/logout", nil, nil)
	s.forceLogout()
}

// CheckAuth asks the server who we are. It runs once at startup and can
// be re-run at any point. Failures never propagate: a 401 means signed
// out, anything else falls back to the cached user.
func (s *AuthStore) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	var user User
	err := s.api.get(ctx, "/api/auth/me", &user)
	if err == nil {
		s.signedIn(&user)
		return
	}

	if StatusOf(err) == 401 {
		// forceLogout already ran via the observer; just settle loading.
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
		return
	}

	// Server unreachable or misbehaving: trust the cache if it has
	// someone, otherwise settle as signed out.
	cached, cacheErr := s.cache.Load()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cacheErr == nil && cached != nil {
		s.state = AuthState{User: cached, Authenticated: true}
	} else {
		s.state = AuthState{}
	}
}

type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	ZoomLink  *string `json:"zoomLink,omitempty"`
}

func (s *AuthStore) UpdateUser(ctx context.Context, update ProfileUpdate) ActionResult {
	var user User
	err := s.api.put(ctx, "/api/users/profile", update, &user)
	if err != nil {
		return s.failWrite(err, "Failed to update profile")
	}
	s.signedIn(&user)
	return ActionResult{Success: true, Message: "Profile updated successfully"}
}

func (s *AuthStore) signedIn(user *User) {
	if user != nil {
		_ = s.cache.Save(user)
	}
	s.mu.Lock()
	s.state = AuthState{User: user, Authenticated: user != nil}
	s.mu.Unlock()
}

// forceLogout clears everything without a network call. It is the
// observer for server-reported auth expiry.
func (s *AuthStore) forceLogout() {
	_ = s.cache.Clear()
	s.mu.Lock()
	s.state = AuthState{}
	s.mu.Unlock()
}

func (s *AuthStore) failWrite(err error, fallback string) ActionResult {
	message := fallback
	if apiMsg := errMessage(err); apiMsg != "" {
		message = apiMsg
	}
	s.mu.Lock()
	s.state.Err = message
	s.mu.Unlock()
	return ActionResult{Success: false, Message: message}
}

// errMessage pulls the server-supplied message out of an API error, or
// "" when there is none to show.
func errMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
