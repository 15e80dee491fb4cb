package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
)

// CreateRepository is the interface for creating a repository on the provider.
type CreateRepository interface {
	Execute(
		ctx context.Context,
		session *entities.Session,
		descriptor entities.RepositoryDescriptor,
	) entities.ProviderResponse
}

// CreateRepositoryCommand creates a public, auto-initialized repository.
type CreateRepositoryCommand struct {
	access providerAccess
}

// NewCreateRepositoryCommand creates a new CreateRepositoryCommand.
func NewCreateRepositoryCommand(
	registry *infraRepos.ProviderRegistry,
	settings *entities.Settings,
) *CreateRepositoryCommand {
	return &CreateRepositoryCommand{access: newProviderAccess(registry, settings)}
}

func (it *CreateRepositoryCommand) Execute(
	ctx context.Context,
	session *entities.Session,
	descriptor entities.RepositoryDescriptor,
) entities.ProviderResponse {
	if _, ok := session.AccessToken(); !ok {
		return entities.Unauthenticated(nil)
	}

	descriptor = descriptor.Normalize()
	if err := descriptor.Validate(); err != nil {
		return entities.Failed(entities.FailureValidation, err.Error(), nil)
	}

	provider, failure := it.access.forSession(session, nil)
	if failure != nil {
		return *failure
	}

	created, err := provider.CreateRepository(ctx, descriptor)
	if err != nil {
		logger.WithField("repository", descriptor.Name).Errorf("Failed to create repository: %v", err)
		return entities.ProviderFailed("Failed to create repository", err, nil)
	}

	logger.Infof("Created repository %q", descriptor.Name)
	return entities.Succeeded(created)
}
