package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
	tracerName   = "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/github"
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
// Bodies are decoded into json.RawMessage so callers receive exactly what the
// API returned.
type GitHubProviderRepository struct {
	client  *gh.Client
	timeout time.Duration
	tracer  trace.Tracer
}

// NewProviderFactory validates the provider settings and returns a constructor
// binding the shared HTTP client to a caller's token.
func NewProviderFactory(
	settings entities.ProviderSettings,
	httpClient *http.Client,
) (func(token string) repositories.ProviderRepository, error) {
	baseURL, err := parseBaseURL(settings.BaseURL)
	if err != nil {
		return nil, err
	}

	return func(token string) repositories.ProviderRepository {
		return NewGitHubProviderRepository(baseURL, httpClient, settings.Timeout, token)
	}, nil
}

// NewGitHubProviderRepository creates a GitHub provider for the given token.
func NewGitHubProviderRepository(
	baseURL *url.URL,
	httpClient *http.Client,
	timeout time.Duration,
	token string,
) *GitHubProviderRepository {
	client := gh.NewClient(httpClient).WithAuthToken(token)
	if baseURL != nil {
		u := *baseURL
		client.BaseURL = &u
	}
	return &GitHubProviderRepository{
		client:  client,
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

func (p *GitHubProviderRepository) GetAuthenticatedUser(ctx context.Context) (entities.Identity, error) {
	ctx, end := p.start(ctx, "GetAuthenticatedUser")
	var err error
	defer func() { end(err) }()

	var user *gh.User
	user, _, err = p.client.Users.Get(ctx, "")
	if err != nil {
		return entities.Identity{}, err
	}

	return entities.Identity{
		Login:     user.GetLogin(),
		Email:     user.GetEmail(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

// ListRepositories follows pagination and concatenates pages in provider order.
func (p *GitHubProviderRepository) ListRepositories(ctx context.Context) ([]json.RawMessage, error) {
	allRepos := make([]json.RawMessage, 0)
	page := 0

	for {
		repos, nextPage, err := p.listRepositoriesPage(ctx, page)
		if err != nil {
			return nil, err
		}
		allRepos = append(allRepos, repos...)

		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	return allRepos, nil
}

func (p *GitHubProviderRepository) listRepositoriesPage(
	ctx context.Context,
	page int,
) ([]json.RawMessage, int, error) {
	ctx, end := p.start(ctx, "ListRepositories", attribute.Int("github.page", page))
	var err error
	defer func() { end(err) }()

	query := url.Values{}
	query.Set("per_page", fmt.Sprint(perPage))
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}

	var req *http.Request
	req, err = p.client.NewRequest(http.MethodGet, "user/repos?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	var repos []json.RawMessage
	var resp *gh.Response
	resp, err = p.client.Do(ctx, req, &repos)
	if err != nil {
		return nil, 0, err
	}

	return repos, resp.NextPage, nil
}

func (p *GitHubProviderRepository) CreateRepository(
	ctx context.Context,
	descriptor entities.RepositoryDescriptor,
) (json.RawMessage, error) {
	ctx, end := p.start(ctx, "CreateRepository", attribute.String("github.repo", descriptor.Name))
	var err error
	defer func() { end(err) }()

	body := &gh.Repository{
		Name:        gh.String(descriptor.Name),
		Description: gh.String(descriptor.Description),
		Private:     gh.Bool(false),
		AutoInit:    gh.Bool(true),
	}

	var req *http.Request
	req, err = p.client.NewRequest(http.MethodPost, "user/repos", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var created json.RawMessage
	if _, err = p.client.Do(ctx, req, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (p *GitHubProviderRepository) GetFileSHA(ctx context.Context, commit entities.FileCommit) (string, error) {
	ctx, end := p.start(ctx, "GetFileSHA", commitAttributes(commit)...)
	var err error
	defer func() { end(err) }()

	var file *gh.RepositoryContent
	var resp *gh.Response
	file, _, resp, err = p.client.Repositories.GetContents(
		ctx, commit.Owner, commit.Repo, commit.Path,
		&gh.RepositoryContentGetOptions{Ref: commit.Branch},
	)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		err = nil
		return "", entities.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if file == nil {
		err = fmt.Errorf("path %q is a directory, not a file", commit.Path)
		return "", err
	}

	return file.GetSHA(), nil
}

func (p *GitHubProviderRepository) CommitFile(
	ctx context.Context,
	commit entities.FileCommit,
) (json.RawMessage, error) {
	ctx, end := p.start(ctx, "CommitFile", commitAttributes(commit)...)
	var err error
	defer func() { end(err) }()

	content := []byte(commit.Content)
	if content == nil {
		content = []byte{}
	}
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(commit.Message),
		Content: content,
		Branch:  gh.String(commit.Branch),
	}
	if commit.SHA != "" {
		opts.SHA = gh.String(commit.SHA)
	}

	var req *http.Request
	req, err = p.client.NewRequest(http.MethodPut, contentsPath(commit), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var result json.RawMessage
	if _, err = p.client.Do(ctx, req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// start opens a span and applies the per-call deadline. The returned function
// records the outcome and releases both.
func (p *GitHubProviderRepository) start(
	ctx context.Context,
	operation string,
	attrs ...attribute.KeyValue,
) (context.Context, func(error)) {
	ctx, span := p.tracer.Start(ctx, "github."+operation, trace.WithAttributes(attrs...))
	cancel := func() {}
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	}

	return ctx, func(err error) {
		cancel()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var errResp *gh.ErrorResponse
			if errors.As(err, &errResp) && errResp.Response != nil {
				span.SetAttributes(attribute.Int("http.status_code", errResp.Response.StatusCode))
			}
		}
		span.End()
	}
}

func commitAttributes(commit entities.FileCommit) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("github.owner", commit.Owner),
		attribute.String("github.repo", commit.Repo),
		attribute.String("github.path", commit.Path),
	}
}

func contentsPath(commit entities.FileCommit) string {
	escaped := (&url.URL{Path: strings.Trim(commit.Path, "/")}).EscapedPath()
	return fmt.Sprintf(
		"repos/%s/%s/contents/%s",
		url.PathEscape(commit.Owner), url.PathEscape(commit.Repo), escaped,
	)
}

// parseBaseURL normalizes the API base so go-github can resolve relative paths.
func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("provider base URL is required")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provider base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("provider base URL %q must be absolute", raw)
	}
	return u, nil
}
