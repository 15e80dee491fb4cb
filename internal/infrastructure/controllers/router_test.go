//go:build unit

package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/controllers"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
	"github.com/rios0rios0/sqlplayground/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/sqlplayground/test/infrastructure/repositorydoubles"
)

type harness struct {
	handler  http.Handler
	provider *doubles.SpyProviderRepository
	sessions *doubles.InMemorySessionRepository
	history  *doubles.SpyQueryHistoryRepository
}

func newHarness(t *testing.T, provider *doubles.SpyProviderRepository) *harness {
	t.Helper()

	settings := entities.DefaultSettings()
	settings.Session.Secret = "test-secret"

	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(_ string) repositories.ProviderRepository { return provider })

	sessions := doubles.NewInMemorySessionRepository()
	codec := &doubles.StubSessionCodec{}
	history := &doubles.SpyQueryHistoryRepository{}

	profile := commands.NewGetProfileCommand()
	commitFile := commands.NewCommitFileCommand(registry, settings)
	middleware := controllers.NewSessionMiddleware(commands.NewResolveSessionCommand(sessions, codec), settings)

	all := controllers.NewControllers(
		controllers.NewHealthController(),
		controllers.NewProfileController(profile),
		controllers.NewStatusController(profile),
		controllers.NewListRepositoriesController(commands.NewListRepositoriesCommand(registry, settings)),
		controllers.NewCreateRepositoryController(commands.NewCreateRepositoryCommand(registry, settings)),
		controllers.NewCommitFileController(commitFile),
		controllers.NewEstablishSessionController(
			commands.NewEstablishSessionCommand(registry, settings, sessions, codec, profile),
			middleware,
		),
		controllers.NewEndSessionController(commands.NewEndSessionCommand(sessions), middleware),
		controllers.NewExecuteQueryController(commands.NewExecuteQueryCommand(history)),
		controllers.NewValidateQueryController(commands.NewValidateQueryCommand()),
		controllers.NewHistoryController(commands.NewGetHistoryCommand(history)),
		controllers.NewSchemaController(commands.NewGetSchemaCommand()),
		controllers.NewSaveQueryToGitController(commands.NewSaveQueryToGitCommand(commitFile)),
	)

	return &harness{
		handler:  controllers.NewRouter(*all, middleware),
		provider: provider,
		sessions: sessions,
		history:  history,
	}
}

// signIn stores a session and returns the bearer header value referring to it.
func (h *harness) signIn(session *entities.Session) string {
	h.sessions.Sessions[session.ID] = session
	return "Bearer signed:" + session.ID
}

func (h *harness) do(method, target, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("should answer health checks", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodGet, "/health", "", "")

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("should describe anonymous callers", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		profile := h.do(http.MethodGet, "/api/v1/auth/profile", "", "")
		status := h.do(http.MethodGet, "/api/v1/auth/status", "", "Bearer forged")

		// then
		assert.Equal(t, http.StatusOK, profile.Code)
		assert.JSONEq(t,
			`{"login":"unknown","email":"not provided","avatar_url":"","authenticated":false}`,
			profile.Body.String(),
		)
		assert.JSONEq(t,
			`{"authenticated":false,"user":"anonymous","provider":"GitHub OAuth2"}`,
			status.Body.String(),
		)
	})

	t.Run("should return 401 for anonymous repository listing", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodGet, "/api/v1/auth/repositories", "", "")

		// then
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"No access token available"}`, rec.Body.String())
		assert.Zero(t, h.provider.TotalCalls())
	})

	t.Run("should pass provider repositories through unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			Repositories: []json.RawMessage{json.RawMessage(`{"id":1,"full_name":"octocat/hello"}`)},
		})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		rec := h.do(http.MethodGet, "/api/v1/auth/repositories", "", auth)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `[{"id":1,"full_name":"octocat/hello"}]`, rec.Body.String())
	})

	t.Run("should write provider bodies byte for byte", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			Repositories: []json.RawMessage{
				json.RawMessage(`{"id": 1, "homepage": "https://x.example/?a=1&b=<2>"}`),
				json.RawMessage(`{"id":2}`),
			},
			CreatedRepository: json.RawMessage(`{ "name": "a&b" }`),
		})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		listed := h.do(http.MethodGet, "/api/v1/auth/repositories", "", auth)
		created := h.do(http.MethodPost, "/api/v1/auth/repositories?name=demo", "", auth)

		// then
		assert.Equal(t, `[{"id": 1, "homepage": "https://x.example/?a=1&b=<2>"},{"id":2}]`, listed.Body.String())
		assert.Equal(t, `{ "name": "a&b" }`, created.Body.String())
	})

	t.Run("should create a repository from query parameters", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName:      "github",
			CreatedRepository: json.RawMessage(`{"name":"demo"}`),
		})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		rec := h.do(http.MethodPost, "/api/v1/auth/repositories?name=demo", "", auth)

		// then
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"name":"demo"}`, rec.Body.String())
		require.Len(t, h.provider.CreateInputs, 1)
		assert.Equal(t, "SQL Playground Repository", h.provider.CreateInputs[0].Description)
	})

	t.Run("should return 400 when the repository name is missing", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		rec := h.do(http.MethodPost, "/api/v1/auth/repositories", "", auth)

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Repository name is required"}`, rec.Body.String())
	})

	t.Run("should commit a file addressed by path values", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			CommitResult: json.RawMessage(`{"commit":{"sha":"c1"}}`),
		})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		rec := h.do(
			http.MethodPost,
			"/api/v1/auth/repositories/octocat/demo/files?path=q.sql&content=SELECT%201",
			"",
			auth,
		)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, h.provider.CommitInputs, 1)
		committed := h.provider.CommitInputs[0]
		assert.Equal(t, "octocat", committed.Owner)
		assert.Equal(t, "demo", committed.Repo)
		assert.Equal(t, "q.sql", committed.Path)
		assert.Equal(t, "SELECT 1", committed.Content)
	})

	t.Run("should establish a session and accept its cookie", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			User:         entities.Identity{Login: "octocat", Email: "octo@example.com"},
		})

		// when
		rec := h.do(http.MethodPost, "/api/v1/auth/session", `{"access_token":"gho_abc"}`, "")

		// then
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t,
			`{"login":"octocat","email":"octo@example.com","avatar_url":"","authenticated":true}`,
			rec.Body.String(),
		)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "playground_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", nil)
		req.AddCookie(cookies[0])
		status := httptest.NewRecorder()
		h.handler.ServeHTTP(status, req)
		assert.JSONEq(t,
			`{"authenticated":true,"user":"octocat","provider":"GitHub OAuth2"}`,
			status.Body.String(),
		)
	})

	t.Run("should return 401 when the provider rejects the token", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			GetUserErr:   assert.AnError,
		})

		// when
		rec := h.do(http.MethodPost, "/api/v1/auth/session", `{"access_token":"gho_bad"}`, "")

		// then
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to establish session: ")
	})

	t.Run("should return 400 for a malformed session request", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodPost, "/api/v1/auth/session", `{`, "")

		// then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, h.provider.TotalCalls())
	})

	t.Run("should end the session and clear the cookie", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})
		auth := h.signIn(entitybuilders.NewSessionBuilder().WithID("s-9").BuildSession())

		// when
		rec := h.do(http.MethodDelete, "/api/v1/auth/session", "", auth)

		// then
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, h.sessions.Sessions)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("should execute queries and list them in history", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		executed := h.do(http.MethodPost, "/api/v1/sql/execute", `{"query":"SELECT 1"}`, auth)
		history := h.do(http.MethodGet, "/api/v1/sql/history", "", auth)

		// then
		assert.Equal(t, http.StatusOK, executed.Code)
		var response entities.QueryResponse
		require.NoError(t, json.Unmarshal(executed.Body.Bytes(), &response))
		assert.Equal(t, "Query executed successfully by user: octocat", response.Message)

		assert.Equal(t, http.StatusOK, history.Code)
		var entries []entities.QueryHistoryEntry
		require.NoError(t, json.Unmarshal(history.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "SELECT 1", entries[0].Query)
	})

	t.Run("should reject blank queries and bad limits with 400", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		execute := h.do(http.MethodPost, "/api/v1/sql/execute", `{"query":"  "}`, "")
		validate := h.do(http.MethodPost, "/api/v1/sql/validate", `{"query":""}`, "")
		history := h.do(http.MethodGet, "/api/v1/sql/history?limit=abc", "", "")

		// then
		assert.Equal(t, http.StatusBadRequest, execute.Code)
		assert.JSONEq(t, `{"error":"Query cannot be empty"}`, execute.Body.String())
		assert.Equal(t, http.StatusBadRequest, validate.Code)
		assert.Equal(t, http.StatusBadRequest, history.Code)
	})

	t.Run("should describe the schema", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodGet, "/api/v1/sql/schema", "", "")

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		var schema entities.DatabaseSchema
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
		assert.Equal(t, "anonymous", schema.User)
		assert.Len(t, schema.Tables, 3)
	})

	t.Run("should save a query to the caller's repository", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{
			ProviderName: "github",
			CommitResult: json.RawMessage(`{"content":{"path":"daily.sql"}}`),
		})
		auth := h.signIn(entitybuilders.NewSessionBuilder().BuildSession())

		// when
		rec := h.do(
			http.MethodPost,
			"/api/v1/sql/save-to-git?repository=playground&fileName=daily.sql",
			`{"query":"SELECT 1"}`,
			auth,
		)

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"content":{"path":"daily.sql"}}`, rec.Body.String())
		require.Len(t, h.provider.CommitInputs, 1)
		assert.Equal(t, "Add SQL query from playground: daily.sql", h.provider.CommitInputs[0].Message)
	})

	t.Run("should reject saving to git without a session", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodPost, "/api/v1/sql/save-to-git?repository=playground", `{"query":"SELECT 1"}`, "")

		// then
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, h.provider.TotalCalls())
	})

	t.Run("should reject unsupported methods", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t, &doubles.SpyProviderRepository{ProviderName: "github"})

		// when
		rec := h.do(http.MethodPut, "/api/v1/auth/profile", "", "")

		// then
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
