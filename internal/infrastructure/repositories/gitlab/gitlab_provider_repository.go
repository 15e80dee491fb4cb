package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
// GitLab projects play the role of repositories; responses are the client's
// decoded structs encoded back to JSON.
type GitLabProviderRepository struct {
	client  *gl.Client
	timeout time.Duration
	initErr error
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
		return NewGitLabProviderRepository(baseURL, httpClient, settings.Timeout, token)
	}, nil
}

// NewGitLabProviderRepository creates a GitLab provider for the given token.
func NewGitLabProviderRepository(
	baseURL string,
	httpClient *http.Client,
	timeout time.Duration,
	token string,
) *GitLabProviderRepository {
	client, err := gl.NewClient(
		token,
		gl.WithBaseURL(baseURL),
		gl.WithHTTPClient(httpClient),
		gl.WithoutRetries(),
	)
	if err != nil {
		// fail on use rather than at construction
		return &GitLabProviderRepository{
			timeout: timeout,
			initErr: fmt.Errorf("%w: %w", errClientNotInitialized, err),
		}
	}
	return &GitLabProviderRepository{client: client, timeout: timeout}
}

func (p *GitLabProviderRepository) Name() string { return providerName }

func (p *GitLabProviderRepository) GetAuthenticatedUser(ctx context.Context) (entities.Identity, error) {
	if p.client == nil {
		return entities.Identity{}, p.initErr
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	user, _, err := p.client.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		return entities.Identity{}, err
	}

	return entities.Identity{
		Login:     user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}, nil
}

// ListRepositories lists every project the token owner is a member of, following pagination.
func (p *GitLabProviderRepository) ListRepositories(ctx context.Context) ([]json.RawMessage, error) {
	if p.client == nil {
		return nil, p.initErr
	}

	allRepos := make([]json.RawMessage, 0)
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Membership:  gl.Ptr(true),
	}

	for {
		projects, resp, err := p.listProjectsPage(ctx, opts)
		if err != nil {
			return nil, err
		}

		for _, proj := range projects {
			raw, marshalErr := json.Marshal(proj)
			if marshalErr != nil {
				return nil, fmt.Errorf("failed to encode project %q: %w", proj.PathWithNamespace, marshalErr)
			}
			allRepos = append(allRepos, raw)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitLabProviderRepository) listProjectsPage(
	ctx context.Context,
	opts *gl.ListProjectsOptions,
) ([]*gl.Project, *gl.Response, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	return p.client.Projects.ListProjects(opts, gl.WithContext(ctx))
}

func (p *GitLabProviderRepository) CreateRepository(
	ctx context.Context,
	descriptor entities.RepositoryDescriptor,
) (json.RawMessage, error) {
	if p.client == nil {
		return nil, p.initErr
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	project, _, err := p.client.Projects.CreateProject(&gl.CreateProjectOptions{
		Name:                 gl.Ptr(descriptor.Name),
		Description:          gl.Ptr(descriptor.Description),
		Visibility:           gl.Ptr(gl.PublicVisibility),
		InitializeWithReadme: gl.Ptr(true),
		DefaultBranch:        gl.Ptr(entities.CommitBranch),
	}, gl.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return encode(project)
}

// GetFileSHA returns the blob ID of the file on the commit's branch.
func (p *GitLabProviderRepository) GetFileSHA(ctx context.Context, commit entities.FileCommit) (string, error) {
	if p.client == nil {
		return "", p.initErr
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	file, resp, err := p.client.RepositoryFiles.GetFile(
		projectID(commit), strings.Trim(commit.Path, "/"),
		&gl.GetFileOptions{Ref: gl.Ptr(commit.Branch)},
		gl.WithContext(ctx),
	)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return "", entities.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return file.BlobID, nil
}

// CommitFile creates the file, or updates it when commit.SHA reports an existing blob.
func (p *GitLabProviderRepository) CommitFile(
	ctx context.Context,
	commit entities.FileCommit,
) (json.RawMessage, error) {
	if p.client == nil {
		return nil, p.initErr
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	pid := projectID(commit)
	path := strings.Trim(commit.Path, "/")

	if commit.SHA == "" {
		info, _, err := p.client.RepositoryFiles.CreateFile(pid, path, &gl.CreateFileOptions{
			Branch:        gl.Ptr(commit.Branch),
			Content:       gl.Ptr(commit.Content),
			CommitMessage: gl.Ptr(commit.Message),
		}, gl.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		return encode(info)
	}

	info, _, err := p.client.RepositoryFiles.UpdateFile(pid, path, &gl.UpdateFileOptions{
		Branch:        gl.Ptr(commit.Branch),
		Content:       gl.Ptr(commit.Content),
		CommitMessage: gl.Ptr(commit.Message),
	}, gl.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return encode(info)
}

func (p *GitLabProviderRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return ctx, func() {}
}

func projectID(commit entities.FileCommit) string {
	return commit.Owner + "/" + commit.Repo
}

func encode(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return raw, nil
}

// parseBaseURL accepts either the instance root or its /api/v4 endpoint.
func parseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("provider base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse provider base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("provider base URL %q must be absolute", raw)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}
