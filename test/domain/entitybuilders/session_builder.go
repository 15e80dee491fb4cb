//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// SessionBuilder helps create test sessions with a fluent interface.
// The default is an authenticated session with a valid, non-expiring token.
type SessionBuilder struct {
	*testkit.BaseBuilder
	id            string
	login         string
	email         string
	avatarURL     string
	token         *oauth2.Token
	authenticated bool
	createdAt     time.Time
	expiresAt     time.Time
}

// NewSessionBuilder creates a new session builder with sensible defaults.
func NewSessionBuilder() *SessionBuilder {
	b := &SessionBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SessionBuilder) defaults() {
	b.id = "test-session"
	b.login = "octocat"
	b.email = "octocat@example.com"
	b.avatarURL = "https://avatars.example.com/u/1"
	b.token = &oauth2.Token{AccessToken: "gho_test_token", TokenType: "bearer"}
	b.authenticated = true
	b.createdAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.expiresAt = time.Time{}
}

// WithID sets the session ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.id = id
	return b
}

// WithLogin sets the provider login.
func (b *SessionBuilder) WithLogin(login string) *SessionBuilder {
	b.login = login
	return b
}

// WithEmail sets the provider email.
func (b *SessionBuilder) WithEmail(email string) *SessionBuilder {
	b.email = email
	return b
}

// WithAvatarURL sets the avatar URL.
func (b *SessionBuilder) WithAvatarURL(avatarURL string) *SessionBuilder {
	b.avatarURL = avatarURL
	return b
}

// WithAccessToken sets a non-expiring bearer token.
func (b *SessionBuilder) WithAccessToken(token string) *SessionBuilder {
	b.token = &oauth2.Token{AccessToken: token, TokenType: "bearer"}
	return b
}

// WithToken sets the raw oauth2 token.
func (b *SessionBuilder) WithToken(token *oauth2.Token) *SessionBuilder {
	b.token = token
	return b
}

// WithoutToken removes the access token.
func (b *SessionBuilder) WithoutToken() *SessionBuilder {
	b.token = nil
	return b
}

// Anonymous marks the session as not authenticated.
func (b *SessionBuilder) Anonymous() *SessionBuilder {
	b.authenticated = false
	return b
}

// WithExpiresAt sets the session expiry.
func (b *SessionBuilder) WithExpiresAt(expiresAt time.Time) *SessionBuilder {
	b.expiresAt = expiresAt
	return b
}

// Build creates the session (satisfies testkit.Builder interface).
func (b *SessionBuilder) Build() interface{} {
	return b.BuildSession()
}

// BuildSession creates the session with a concrete return type.
func (b *SessionBuilder) BuildSession() *entities.Session {
	var token *oauth2.Token
	if b.token != nil {
		copied := *b.token
		token = &copied
	}
	return &entities.Session{
		ID: b.id,
		Identity: entities.Identity{
			Login:     b.login,
			Email:     b.email,
			AvatarURL: b.avatarURL,
		},
		Token:         token,
		Authenticated: b.authenticated,
		CreatedAt:     b.createdAt,
		ExpiresAt:     b.expiresAt,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SessionBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SessionBuilder.
func (b *SessionBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	if b.token != nil {
		token := *b.token
		clone.token = &token
	}
	return &clone
}
