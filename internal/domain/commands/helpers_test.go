//go:build unit

package commands_test

import (
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/sqlplayground/test/infrastructure/repositorydoubles"
)

// registryWith returns a registry whose github factory records every token it
// is asked for and always hands back spy.
func registryWith(spy *doubles.SpyProviderRepository, tokens *[]string) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(token string) repositories.ProviderRepository {
		if tokens != nil {
			*tokens = append(*tokens, token)
		}
		return spy
	})
	return registry
}

func testSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Session.Secret = "test-secret"
	return settings
}
