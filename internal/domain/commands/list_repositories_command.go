package commands

import (
	"bytes"
	"context"
	"encoding/json"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
)

// ListRepositories is the interface for listing the caller's repositories.
type ListRepositories interface {
	Execute(ctx context.Context, session *entities.Session) entities.ProviderResponse
}

// ListRepositoriesCommand lists every repository visible to the session's token.
// Failures still carry an empty array body.
type ListRepositoriesCommand struct {
	access providerAccess
}

// NewListRepositoriesCommand creates a new ListRepositoriesCommand.
func NewListRepositoriesCommand(
	registry *infraRepos.ProviderRegistry,
	settings *entities.Settings,
) *ListRepositoriesCommand {
	return &ListRepositoriesCommand{access: newProviderAccess(registry, settings)}
}

func (it *ListRepositoriesCommand) Execute(
	ctx context.Context,
	session *entities.Session,
) entities.ProviderResponse {
	provider, failure := it.access.forSession(session, emptyArray)
	if failure != nil {
		return *failure
	}

	repos, err := provider.ListRepositories(ctx)
	if err != nil {
		logger.Errorf("Failed to list repositories: %v", err)
		return entities.ProviderFailed("Failed to list repositories", err, emptyArray)
	}

	logger.Debugf("Listed %d repositories", len(repos))
	return entities.Succeeded(joinArray(repos))
}

// joinArray concatenates raw elements into a JSON array without re-encoding them.
func joinArray(items []json.RawMessage) json.RawMessage {
	parts := make([][]byte, len(items))
	for i, item := range items {
		parts[i] = item
	}
	body := append([]byte{'['}, bytes.Join(parts, []byte(","))...)
	return append(body, ']')
}
