package controllers

import (
	"net/http"
	"strconv"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

const defaultHistoryLimit = 10

// ExecuteQueryController runs a playground query.
type ExecuteQueryController struct {
	command commands.ExecuteQuery
}

// NewExecuteQueryController creates a new ExecuteQueryController.
func NewExecuteQueryController(command commands.ExecuteQuery) *ExecuteQueryController {
	return &ExecuteQueryController{command: command}
}

func (it *ExecuteQueryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/sql/execute",
		Summary: "Execute a SQL query",
	}
}

func (it *ExecuteQueryController) Execute(w http.ResponseWriter, r *http.Request) {
	var request entities.QueryRequest
	if failure := decodeJSON(r, &request); failure != nil {
		writeFailure(w, failure)
		return
	}

	response, failure := it.command.Execute(r.Context(), SessionFromContext(r.Context()), request)
	if failure != nil {
		writeFailure(w, failure)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// ValidateQueryController checks a query without running it.
type ValidateQueryController struct {
	command commands.ValidateQuery
}

// NewValidateQueryController creates a new ValidateQueryController.
func NewValidateQueryController(command commands.ValidateQuery) *ValidateQueryController {
	return &ValidateQueryController{command: command}
}

func (it *ValidateQueryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/sql/validate",
		Summary: "Validate SQL query syntax",
	}
}

func (it *ValidateQueryController) Execute(w http.ResponseWriter, r *http.Request) {
	var request entities.QueryRequest
	if failure := decodeJSON(r, &request); failure != nil {
		writeFailure(w, failure)
		return
	}

	response, failure := it.command.Execute(request)
	if failure != nil {
		writeFailure(w, failure)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// HistoryController lists the caller's recent queries.
type HistoryController struct {
	command commands.GetHistory
}

// NewHistoryController creates a new HistoryController.
func NewHistoryController(command commands.GetHistory) *HistoryController {
	return &HistoryController{command: command}
}

func (it *HistoryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodGet,
		Path:    "/api/v1/sql/history",
		Summary: "Get query execution history",
	}
}

func (it *HistoryController) Execute(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeFailure(w, &entities.Failure{Kind: entities.FailureValidation, Message: "Limit must be a number"})
			return
		}
		limit = parsed
	}

	entries, failure := it.command.Execute(r.Context(), SessionFromContext(r.Context()), limit)
	if failure != nil {
		writeFailure(w, failure)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// SchemaController describes the playground database.
type SchemaController struct {
	command commands.GetSchema
}

// NewSchemaController creates a new SchemaController.
func NewSchemaController(command commands.GetSchema) *SchemaController {
	return &SchemaController{command: command}
}

func (it *SchemaController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodGet,
		Path:    "/api/v1/sql/schema",
		Summary: "Get database schema information",
	}
}

func (it *SchemaController) Execute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, it.command.Execute(SessionFromContext(r.Context())))
}

// SaveQueryToGitController commits a query to one of the caller's repositories.
type SaveQueryToGitController struct {
	command commands.SaveQueryToGit
}

// NewSaveQueryToGitController creates a new SaveQueryToGitController.
func NewSaveQueryToGitController(command commands.SaveQueryToGit) *SaveQueryToGitController {
	return &SaveQueryToGitController{command: command}
}

func (it *SaveQueryToGitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/sql/save-to-git",
		Summary: "Save a query to a GitHub repository",
	}
}

func (it *SaveQueryToGitController) Execute(w http.ResponseWriter, r *http.Request) {
	var request entities.QueryRequest
	if failure := decodeJSON(r, &request); failure != nil {
		writeFailure(w, failure)
		return
	}

	query := r.URL.Query()
	response := it.command.Execute(
		r.Context(),
		SessionFromContext(r.Context()),
		request,
		query.Get("repository"),
		query.Get("fileName"),
	)
	writeProviderResponse(w, response, http.StatusOK)
}
