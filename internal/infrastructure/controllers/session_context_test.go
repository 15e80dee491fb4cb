//go:build unit

package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/controllers"
	"github.com/rios0rios0/sqlplayground/test/domain/commanddoubles"
	"github.com/rios0rios0/sqlplayground/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/sqlplayground/test/infrastructure/repositorydoubles"
)

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	newMiddleware := func(sessions *doubles.InMemorySessionRepository) *controllers.SessionMiddleware {
		settings := entities.DefaultSettings()
		return controllers.NewSessionMiddleware(
			commands.NewResolveSessionCommand(sessions, &doubles.StubSessionCodec{}),
			settings,
		)
	}

	capture := func(middleware *controllers.SessionMiddleware, req *http.Request) *entities.Session {
		var seen *entities.Session
		handler := middleware.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = controllers.SessionFromContext(r.Context())
		}))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		return seen
	}

	t.Run("should prefer the bearer header over the cookie", func(t *testing.T) {
		t.Parallel()

		// given
		sessions := doubles.NewInMemorySessionRepository()
		sessions.Sessions["header"] = entitybuilders.NewSessionBuilder().WithID("header").BuildSession()
		sessions.Sessions["cookie"] = entitybuilders.NewSessionBuilder().WithID("cookie").BuildSession()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer signed:header")
		req.AddCookie(&http.Cookie{Name: "playground_session", Value: "signed:cookie"})

		// when
		session := capture(newMiddleware(sessions), req)

		// then
		if assert.NotNil(t, session) {
			assert.Equal(t, "header", session.ID)
		}
	})

	t.Run("should read the session cookie", func(t *testing.T) {
		t.Parallel()

		// given
		sessions := doubles.NewInMemorySessionRepository()
		sessions.Sessions["cookie"] = entitybuilders.NewSessionBuilder().WithID("cookie").BuildSession()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "playground_session", Value: "signed:cookie"})

		// when
		session := capture(newMiddleware(sessions), req)

		// then
		if assert.NotNil(t, session) {
			assert.Equal(t, "cookie", session.ID)
		}
	})

	t.Run("should leave requests without credentials anonymous", func(t *testing.T) {
		t.Parallel()

		// given
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		// when
		session := capture(newMiddleware(doubles.NewInMemorySessionRepository()), req)

		// then
		assert.Nil(t, session)
	})

	t.Run("should not resolve when no credential is sent", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubResolveSessionCommand{}
		middleware := controllers.NewSessionMiddleware(stub, entities.DefaultSettings())
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		// when
		session := capture(middleware, req)

		// then
		assert.Nil(t, session)
		assert.Empty(t, stub.Credentials)
	})

	t.Run("should pass the trimmed bearer value to the resolver", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubResolveSessionCommand{
			Session: entitybuilders.NewSessionBuilder().WithID("resolved").BuildSession(),
		}
		middleware := controllers.NewSessionMiddleware(stub, entities.DefaultSettings())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer   signed:resolved ")

		// when
		session := capture(middleware, req)

		// then
		assert.Equal(t, []string{"signed:resolved"}, stub.Credentials)
		if assert.NotNil(t, session) {
			assert.Equal(t, "resolved", session.ID)
		}
	})

	t.Run("should return nil from an empty context", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()

		// when
		session := controllers.SessionFromContext(ctx)

		// then
		assert.Nil(t, session)
	})
}
