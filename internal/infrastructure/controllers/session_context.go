package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

type sessionContextKey struct{}

// WithSession returns a context carrying the resolved session.
func WithSession(ctx context.Context, session *entities.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session attached by SessionMiddleware, or nil
// for anonymous requests.
func SessionFromContext(ctx context.Context) *entities.Session {
	if ctx == nil {
		return nil
	}
	session, _ := ctx.Value(sessionContextKey{}).(*entities.Session)
	return session
}

// SessionMiddleware loads the caller's session from the session cookie or an
// Authorization bearer credential. Requests without a valid credential pass
// through anonymously; each operation decides what it requires.
type SessionMiddleware struct {
	resolve      commands.ResolveSession
	cookieName   string
	secureCookie bool
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(resolve commands.ResolveSession, settings *entities.Settings) *SessionMiddleware {
	return &SessionMiddleware{
		resolve:      resolve,
		cookieName:   settings.Session.CookieName,
		secureCookie: settings.Session.SecureCookie,
	}
}

// Wrap attaches the session to every request handled by next.
func (it *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := it.credential(r)
		if credential == "" {
			next.ServeHTTP(w, r)
			return
		}
		session := it.resolve.Execute(r.Context(), credential)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (it *SessionMiddleware) credential(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
	}
	if cookie, err := r.Cookie(it.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// SetCookie issues the session cookie.
func (it *SessionMiddleware) SetCookie(w http.ResponseWriter, credential string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     it.cookieName,
		Value:    credential,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   it.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (it *SessionMiddleware) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     it.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   it.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
