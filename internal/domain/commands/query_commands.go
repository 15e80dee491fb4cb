package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
	"github.com/rios0rios0/sqlplayground/internal/domain/repositories"
)

const (
	// stubbed execution statistics reported until a real engine exists
	stubExecutionTimeMillis int64 = 125
	stubRowsAffected              = 10

	// MaxHistoryLimit caps how many history entries a single request may return.
	MaxHistoryLimit = 100
)

// ExecuteQuery is the interface for running a playground query.
type ExecuteQuery interface {
	Execute(
		ctx context.Context,
		session *entities.Session,
		request entities.QueryRequest,
	) (entities.QueryResponse, *entities.Failure)
}

// ExecuteQueryCommand validates a query, returns stubbed execution results and
// records the attempt in the caller's history.
type ExecuteQueryCommand struct {
	history repositories.QueryHistoryRepository
}

// NewExecuteQueryCommand creates a new ExecuteQueryCommand.
func NewExecuteQueryCommand(history repositories.QueryHistoryRepository) *ExecuteQueryCommand {
	return &ExecuteQueryCommand{history: history}
}

func (it *ExecuteQueryCommand) Execute(
	ctx context.Context,
	session *entities.Session,
	request entities.QueryRequest,
) (entities.QueryResponse, *entities.Failure) {
	if err := request.Validate(); err != nil {
		return entities.QueryResponse{}, &entities.Failure{Kind: entities.FailureValidation, Message: err.Error()}
	}

	login := displayLogin(session)
	now := time.Now().UTC()
	executionTime := stubExecutionTimeMillis
	rowsAffected := stubRowsAffected
	response := entities.QueryResponse{
		Success:       true,
		Message:       "Query executed successfully by user: " + login,
		ExecutionTime: &executionTime,
		RowsAffected:  &rowsAffected,
		Timestamp:     now,
	}

	entry := entities.QueryHistoryEntry{
		ID:         uuid.NewString(),
		User:       login,
		Query:      request.Query,
		Success:    response.Success,
		Message:    response.Message,
		ExecutedAt: now,
	}
	if err := it.history.Append(ctx, entry); err != nil {
		logger.Errorf("Failed to record query history: %v", err)
	}

	return response, nil
}

// ValidateQuery is the interface for checking a query without running it.
type ValidateQuery interface {
	Execute(request entities.QueryRequest) (entities.QueryResponse, *entities.Failure)
}

// ValidateQueryCommand applies the request constraints only.
type ValidateQueryCommand struct{}

// NewValidateQueryCommand creates a new ValidateQueryCommand.
func NewValidateQueryCommand() *ValidateQueryCommand {
	return &ValidateQueryCommand{}
}

func (it *ValidateQueryCommand) Execute(
	request entities.QueryRequest,
) (entities.QueryResponse, *entities.Failure) {
	if err := request.Validate(); err != nil {
		return entities.QueryResponse{}, &entities.Failure{Kind: entities.FailureValidation, Message: err.Error()}
	}
	return entities.QueryResponse{
		Success:   true,
		Message:   "Query syntax is valid",
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetHistory is the interface for reading the caller's query history.
type GetHistory interface {
	Execute(
		ctx context.Context,
		session *entities.Session,
		limit int,
	) ([]entities.QueryHistoryEntry, *entities.Failure)
}

// GetHistoryCommand returns the most recent queries of the caller.
type GetHistoryCommand struct {
	history repositories.QueryHistoryRepository
}

// NewGetHistoryCommand creates a new GetHistoryCommand.
func NewGetHistoryCommand(history repositories.QueryHistoryRepository) *GetHistoryCommand {
	return &GetHistoryCommand{history: history}
}

func (it *GetHistoryCommand) Execute(
	ctx context.Context,
	session *entities.Session,
	limit int,
) ([]entities.QueryHistoryEntry, *entities.Failure) {
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, &entities.Failure{
			Kind:    entities.FailureValidation,
			Message: fmt.Sprintf("Limit must be between 1 and %d", MaxHistoryLimit),
		}
	}

	entries, err := it.history.List(ctx, displayLogin(session), limit)
	if err != nil {
		logger.Errorf("Failed to load query history: %v", err)
		return nil, &entities.Failure{Kind: entities.FailureInternal, Message: "Failed to load query history"}
	}
	return entries, nil
}

// GetSchema is the interface for describing the playground database.
type GetSchema interface {
	Execute(session *entities.Session) entities.DatabaseSchema
}

// GetSchemaCommand returns the fixed sample schema exposed by the playground.
type GetSchemaCommand struct{}

// NewGetSchemaCommand creates a new GetSchemaCommand.
func NewGetSchemaCommand() *GetSchemaCommand {
	return &GetSchemaCommand{}
}

func (it *GetSchemaCommand) Execute(session *entities.Session) entities.DatabaseSchema {
	login := displayLogin(session)
	return entities.DatabaseSchema{
		User: login,
		Tables: []entities.TableSchema{
			{Name: "users", Columns: []string{"id", "username", "email", "created_at"}},
			{Name: "orders", Columns: []string{"id", "user_id", "total", "status", "created_at"}},
			{Name: "products", Columns: []string{"id", "name", "price", "category", "stock"}},
		},
		Message: "Database schema information for user: " + login,
	}
}
