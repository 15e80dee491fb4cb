package entities

import (
	"time"

	"golang.org/x/oauth2"
)

// Identity is the provider profile captured when a session is established.
// Empty fields mean the provider did not expose the attribute.
type Identity struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Session is the authenticated-request context carrying the caller's provider
// identity and access token. It is never mutated after being established.
type Session struct {
	ID            string
	Identity      Identity
	Token         *oauth2.Token
	Authenticated bool
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// IsAuthenticated reports whether the session belongs to a signed-in principal.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated
}

// Expired reports whether the session lifetime has elapsed at the given instant.
// Sessions without an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Login returns the provider login, if known.
func (s *Session) Login() (string, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return present(s.Identity.Login)
}

// Email returns the provider email, if known.
func (s *Session) Email() (string, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return present(s.Identity.Email)
}

// AvatarURL returns the provider avatar URL, if known.
func (s *Session) AvatarURL() (string, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return present(s.Identity.AvatarURL)
}

// AccessToken returns the provider access token. A missing, empty or expired
// oauth2 token is reported as absent.
func (s *Session) AccessToken() (string, bool) {
	if !s.IsAuthenticated() || !s.Token.Valid() {
		return "", false
	}
	return s.Token.AccessToken, true
}

// ResolvedIdentity returns the identity record, or the zero value for anonymous sessions.
func (s *Session) ResolvedIdentity() Identity {
	if !s.IsAuthenticated() {
		return Identity{}
	}
	return s.Identity
}

func present(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	return value, true
}
