package sqlite

import (
	"context"
	"time"
)

// SetClock overrides the store clock for testing.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// ExtractUpMigration exports extractUpMigration for testing.
var ExtractUpMigration = extractUpMigration //nolint:gochecknoglobals // test export

// Pragma reads a connection setting for testing.
func (s *Store) Pragma(ctx context.Context, name string) (string, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, "PRAGMA "+name).Scan(&value)
	return value, err
}
