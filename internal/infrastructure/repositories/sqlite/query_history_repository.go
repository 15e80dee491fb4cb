package sqlite

import (
	"context"
	"fmt"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// QueryHistoryRepository stores executed playground queries.
type QueryHistoryRepository struct {
	store *Store
}

// NewQueryHistoryRepository binds a history repository to an open store.
func NewQueryHistoryRepository(store *Store) *QueryHistoryRepository {
	return &QueryHistoryRepository{store: store}
}

func (r *QueryHistoryRepository) Append(ctx context.Context, entry entities.QueryHistoryEntry) error {
	_, err := r.store.sqlDB.ExecContext(ctx, `
INSERT INTO query_history (id, user_login, query, success, message, executed_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.User,
		entry.Query,
		boolToInt(entry.Success),
		entry.Message,
		toMillis(entry.ExecutedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append query history: %w", err)
	}
	return nil
}

func (r *QueryHistoryRepository) List(
	ctx context.Context,
	user string,
	limit int,
) ([]entities.QueryHistoryEntry, error) {
	if limit <= 0 {
		return []entities.QueryHistoryEntry{}, nil
	}

	rows, err := r.store.sqlDB.QueryContext(ctx, `
SELECT id, user_login, query, success, message, executed_at
FROM query_history
WHERE user_login = ?
ORDER BY executed_at DESC, rowid DESC
LIMIT ?`, user, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list query history: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.QueryHistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry      entities.QueryHistoryEntry
			success    int
			executedAt int64
		)
		if err = rows.Scan(&entry.ID, &entry.User, &entry.Query, &success, &entry.Message, &executedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query history: %w", err)
		}
		entry.Success = success != 0
		entry.ExecutedAt = fromMillis(executedAt)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query history: %w", err)
	}
	return entries, nil
}
