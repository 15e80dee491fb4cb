package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxQueryLength bounds the size of a submitted query.
const MaxQueryLength = 10000

// QueryRequest is a SQL query submitted to the playground.
type QueryRequest struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Limit      *int           `json:"limit,omitempty"`
	Timeout    *int           `json:"timeout,omitempty"`
}

// Validate enforces the query constraints.
func (q QueryRequest) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return errors.New("Query cannot be empty") //nolint:stylecheck // user-facing message
	}
	if len(q.Query) > MaxQueryLength {
		return fmt.Errorf("Query cannot exceed %d characters", MaxQueryLength) //nolint:stylecheck // user-facing message
	}
	return nil
}

// ColumnInfo describes a column in a query result.
type ColumnInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Nullable  bool   `json:"nullable"`
	Size      *int   `json:"size,omitempty"`
	Precision *int   `json:"precision,omitempty"`
	Scale     *int   `json:"scale,omitempty"`
}

// QueryResponse is the outcome of executing or validating a query.
type QueryResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	ExecutionTime *int64           `json:"execution_time,omitempty"`
	RowsAffected  *int             `json:"rows_affected,omitempty"`
	Columns       []ColumnInfo     `json:"columns,omitempty"`
	Rows          []map[string]any `json:"rows,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// QueryHistoryEntry is one recorded query execution.
type QueryHistoryEntry struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	Query      string    `json:"query"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	ExecutedAt time.Time `json:"executed_at"`
}

// TableSchema lists the columns of a playground table.
type TableSchema struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// DatabaseSchema is the schema exposed to the playground user.
type DatabaseSchema struct {
	User    string        `json:"user"`
	Tables  []TableSchema `json:"tables"`
	Message string        `json:"message"`
}
