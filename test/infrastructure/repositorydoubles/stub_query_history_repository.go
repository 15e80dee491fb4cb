//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

// SpyQueryHistoryRepository records appended entries in memory.
type SpyQueryHistoryRepository struct {
	Entries   []entities.QueryHistoryEntry
	AppendErr error
	ListErr   error
	ListUsers []string
}

var _ repositories.QueryHistoryRepository = (*SpyQueryHistoryRepository)(nil)

func (s *SpyQueryHistoryRepository) Append(_ context.Context, entry entities.QueryHistoryEntry) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.Entries = append(s.Entries, entry)
	return nil
}

// List returns the user's entries newest first, by insertion order.
func (s *SpyQueryHistoryRepository) List(
	_ context.Context,
	user string,
	limit int,
) ([]entities.QueryHistoryEntry, error) {
	s.ListUsers = append(s.ListUsers, user)
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	result := make([]entities.QueryHistoryEntry, 0)
	for i := len(s.Entries) - 1; i >= 0 && len(result) < limit; i-- {
		if s.Entries[i].User == user {
			result = append(result, s.Entries[i])
		}
	}
	return result, nil
}
