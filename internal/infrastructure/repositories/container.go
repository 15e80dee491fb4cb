package repositories

import (
	"fmt"
	"net/http"

	"go.uber.org/dig"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	domainRepos "github.com/rios0rios0/sqlplayground/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/gitlab"
	sessionRepo "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/session"
	sqliteRepo "github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/sqlite"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// One HTTP client shared by every provider call; deadlines are applied per call
	if err := container.Provide(func() *http.Client {
		return &http.Client{Transport: http.DefaultTransport}
	}); err != nil {
		return err
	}

	// Register provider registry with all provider factories
	if err := container.Provide(NewRegistryFromSettings); err != nil {
		return err
	}

	if err := container.Provide(sqliteRepo.NewStore); err != nil {
		return err
	}
	if err := container.Provide(sqliteRepo.NewSessionRepository); err != nil {
		return err
	}
	if err := container.Provide(sqliteRepo.NewQueryHistoryRepository); err != nil {
		return err
	}
	if err := container.Provide(sessionRepo.NewJWTSessionCodec); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *sqliteRepo.SessionRepository) domainRepos.SessionRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *sqliteRepo.QueryHistoryRepository) domainRepos.QueryHistoryRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *sessionRepo.JWTSessionCodec) domainRepos.SessionCodec {
		return impl
	}); err != nil {
		return err
	}

	return nil
}

// NewRegistryFromSettings builds the provider registry for the configured API endpoint.
// Every known provider is registered; provider.type selects the one commands use.
func NewRegistryFromSettings(settings *entities.Settings, httpClient *http.Client) (*ProviderRegistry, error) {
	githubFactory, err := ghRepo.NewProviderFactory(settings.Provider, httpClient)
	if err != nil {
		return nil, err
	}
	gitlabFactory, err := glRepo.NewProviderFactory(settings.Provider, httpClient)
	if err != nil {
		return nil, err
	}

	reg := NewProviderRegistry()
	reg.Register("github", githubFactory)
	reg.Register("gitlab", gitlabFactory)

	if !reg.Has(settings.Provider.Type) {
		return nil, fmt.Errorf("unknown provider type: %q (known: %v)", settings.Provider.Type, reg.Names())
	}
	return reg, nil
}
