package repositories

import (
	"context"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// QueryHistoryRepository records queries submitted to the playground.
type QueryHistoryRepository interface {
	Append(ctx context.Context, entry entities.QueryHistoryEntry) error

	// List returns the most recent entries for user, newest first.
	List(ctx context.Context, user string, limit int) ([]entities.QueryHistoryEntry, error)
}
