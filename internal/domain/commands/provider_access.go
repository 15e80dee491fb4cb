package commands

import (
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
)

// emptyArray is the body of a failed list operation.
var emptyArray = []byte("[]") //nolint:gochecknoglobals // immutable fallback body

// providerAccess resolves the provider bound to a session's access token.
type providerAccess struct {
	registry     *infraRepos.ProviderRegistry
	providerType string
}

func newProviderAccess(registry *infraRepos.ProviderRegistry, settings *entities.Settings) providerAccess {
	return providerAccess{registry: registry, providerType: settings.Provider.Type}
}

// forSession returns the provider for the session, or a failure when the
// session has no usable token. No provider is constructed in that case.
func (a providerAccess) forSession(
	session *entities.Session,
	fallback []byte,
) (repositories.ProviderRepository, *entities.ProviderResponse) {
	token, ok := session.AccessToken()
	if !ok {
		failure := entities.Unauthenticated(fallback)
		return nil, &failure
	}
	return a.forToken(token, fallback)
}

func (a providerAccess) forToken(
	token string,
	fallback []byte,
) (repositories.ProviderRepository, *entities.ProviderResponse) {
	provider, err := a.registry.Get(a.providerType, token)
	if err != nil {
		failure := entities.Failed(entities.FailureInternal, err.Error(), fallback)
		return nil, &failure
	}
	return provider, nil
}
