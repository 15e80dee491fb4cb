//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"encoding/json"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string
	Token        string

	// --- GetAuthenticatedUser ---
	User        entities.Identity
	GetUserErr  error
	GetUserCall int

	// --- ListRepositories ---
	Repositories []json.RawMessage
	ListErr      error
	ListCalls    int

	// --- CreateRepository ---
	CreatedRepository json.RawMessage
	CreateErr         error
	CreateInputs      []entities.RepositoryDescriptor

	// --- GetFileSHA ---
	FileSHA      string
	GetSHAErr    error
	GetSHAInputs []entities.FileCommit

	// --- CommitFile ---
	CommitResult json.RawMessage
	CommitErr    error
	CommitInputs []entities.FileCommit
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (s *SpyProviderRepository) Name() string { return s.ProviderName }

func (s *SpyProviderRepository) GetAuthenticatedUser(_ context.Context) (entities.Identity, error) {
	s.GetUserCall++
	return s.User, s.GetUserErr
}

func (s *SpyProviderRepository) ListRepositories(_ context.Context) ([]json.RawMessage, error) {
	s.ListCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Repositories, nil
}

func (s *SpyProviderRepository) CreateRepository(
	_ context.Context,
	descriptor entities.RepositoryDescriptor,
) (json.RawMessage, error) {
	s.CreateInputs = append(s.CreateInputs, descriptor)
	return s.CreatedRepository, s.CreateErr
}

func (s *SpyProviderRepository) GetFileSHA(_ context.Context, commit entities.FileCommit) (string, error) {
	s.GetSHAInputs = append(s.GetSHAInputs, commit)
	if s.GetSHAErr != nil {
		return "", s.GetSHAErr
	}
	if s.FileSHA == "" {
		return "", entities.ErrNotFound
	}
	return s.FileSHA, nil
}

func (s *SpyProviderRepository) CommitFile(
	_ context.Context,
	commit entities.FileCommit,
) (json.RawMessage, error) {
	s.CommitInputs = append(s.CommitInputs, commit)
	return s.CommitResult, s.CommitErr
}

// TotalCalls returns the number of provider operations that were attempted.
func (s *SpyProviderRepository) TotalCalls() int {
	return s.GetUserCall + s.ListCalls + len(s.CreateInputs) + len(s.GetSHAInputs) + len(s.CommitInputs)
}
