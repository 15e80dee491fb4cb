package repositories

import (
	"context"
	"encoding/json"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// ProviderRepository abstracts the Git hosting service REST API (GitHub today).
// An instance is bound to a single access token; responses are the provider's
// JSON bodies, passed through without reshaping.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// GetAuthenticatedUser resolves the identity owning the access token.
	GetAuthenticatedUser(ctx context.Context) (entities.Identity, error)

	// ListRepositories returns every repository visible to the token, in provider order.
	ListRepositories(ctx context.Context) ([]json.RawMessage, error)

	// CreateRepository creates a public, auto-initialized repository.
	CreateRepository(ctx context.Context, descriptor entities.RepositoryDescriptor) (json.RawMessage, error)

	// GetFileSHA returns the blob SHA of the file at commit's path on its branch,
	// or entities.ErrNotFound when the file does not exist yet.
	GetFileSHA(ctx context.Context, commit entities.FileCommit) (string, error)

	// CommitFile creates or replaces a single file. commit.SHA must be set when
	// replacing an existing file.
	CommitFile(ctx context.Context, commit entities.FileCommit) (json.RawMessage, error)
}
