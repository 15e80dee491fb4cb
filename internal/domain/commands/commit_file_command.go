package commands

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
)

// CommitFile is the interface for writing a single file to a repository.
type CommitFile interface {
	Execute(ctx context.Context, session *entities.Session, commit entities.FileCommit) entities.ProviderResponse
}

// CommitFileCommand creates or replaces a file on the main branch. The current
// blob SHA is looked up first so existing files are updated instead of rejected.
type CommitFileCommand struct {
	access providerAccess
}

// NewCommitFileCommand creates a new CommitFileCommand.
func NewCommitFileCommand(
	registry *infraRepos.ProviderRegistry,
	settings *entities.Settings,
) *CommitFileCommand {
	return &CommitFileCommand{access: newProviderAccess(registry, settings)}
}

func (it *CommitFileCommand) Execute(
	ctx context.Context,
	session *entities.Session,
	commit entities.FileCommit,
) entities.ProviderResponse {
	if _, ok := session.AccessToken(); !ok {
		return entities.Unauthenticated(nil)
	}

	if err := commit.Validate(); err != nil {
		return entities.Failed(entities.FailureValidation, err.Error(), nil)
	}
	commit = commit.Normalize()

	provider, failure := it.access.forSession(session, nil)
	if failure != nil {
		return *failure
	}

	fields := logger.Fields{"owner": commit.Owner, "repo": commit.Repo, "path": commit.Path}

	sha, err := provider.GetFileSHA(ctx, commit)
	switch {
	case err == nil:
		commit.SHA = sha
		logger.WithFields(fields).Debugf("Updating existing file at revision %s", sha)
	case errors.Is(err, entities.ErrNotFound):
		commit.SHA = ""
	default:
		logger.WithFields(fields).Errorf("Failed to read file revision: %v", err)
		return entities.ProviderFailed("Failed to commit file", err, nil)
	}

	result, err := provider.CommitFile(ctx, commit)
	if err != nil {
		logger.WithFields(fields).Errorf("Failed to commit file: %v", err)
		return entities.ProviderFailed("Failed to commit file", err, nil)
	}

	logger.WithFields(fields).Info("Committed file")
	return entities.Succeeded(result)
}
