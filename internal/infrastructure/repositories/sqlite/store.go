package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/infrastructure/repositories/sqlite/migrations"
)

// connectionParams applies to every pooled connection. busy_timeout comes first so
// the journal_mode switch itself waits on a locked database.
const connectionParams = "?_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=foreign_keys(ON)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_txlock=immediate"

// Store owns the SQLite handle shared by the session and history repositories.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the SQLite database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if path != ":memory:" {
		path = filepath.Clean(path)
	}

	sqlDB, err := sql.Open("sqlite", path+connectionParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite store: %w", err)
	}

	if err = applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Debugf("Opened SQLite store at %s", path)
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// NewStore opens the store configured in settings.
func NewStore(settings *entities.Settings) (*Store, error) {
	return Open(settings.Storage.Path)
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
