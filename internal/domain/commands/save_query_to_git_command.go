package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// DefaultQueryFileName is used when the caller does not name the saved file.
const DefaultQueryFileName = "query.sql"

// SaveQueryToGit is the interface for committing a query to the caller's repository.
type SaveQueryToGit interface {
	Execute(
		ctx context.Context,
		session *entities.Session,
		request entities.QueryRequest,
		repository string,
		fileName string,
	) entities.ProviderResponse
}

// SaveQueryToGitCommand writes the query, prefixed with an execution header,
// to <login>/<repository>/<fileName> through CommitFile.
type SaveQueryToGitCommand struct {
	commitFile CommitFile
}

// NewSaveQueryToGitCommand creates a new SaveQueryToGitCommand.
func NewSaveQueryToGitCommand(commitFile CommitFile) *SaveQueryToGitCommand {
	return &SaveQueryToGitCommand{commitFile: commitFile}
}

func (it *SaveQueryToGitCommand) Execute(
	ctx context.Context,
	session *entities.Session,
	request entities.QueryRequest,
	repository string,
	fileName string,
) entities.ProviderResponse {
	if _, ok := session.AccessToken(); !ok {
		return entities.Unauthenticated(nil)
	}
	if err := request.Validate(); err != nil {
		return entities.Failed(entities.FailureValidation, err.Error(), nil)
	}
	login, ok := session.Login()
	if !ok {
		return entities.Failed(entities.FailureValidation, "Session has no provider login", nil)
	}

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = DefaultQueryFileName
	}

	return it.commitFile.Execute(ctx, session, entities.FileCommit{
		Owner:   login,
		Repo:    repository,
		Path:    fileName,
		Content: renderQueryFile(login, time.Now().UTC(), request),
		Message: "Add SQL query from playground: " + fileName,
	})
}

// renderQueryFile prefixes the query with a comment header describing the run.
func renderQueryFile(login string, executedAt time.Time, request entities.QueryRequest) string {
	timeout := "default"
	if request.Timeout != nil {
		timeout = strconv.Itoa(*request.Timeout)
	}
	limit := "unlimited"
	if request.Limit != nil {
		limit = strconv.Itoa(*request.Limit)
	}

	return fmt.Sprintf(
		"-- Query executed by %s at %s\n-- Parameters: %s\n-- Timeout: %s seconds\n-- Limit: %s rows\n\n%s",
		login,
		executedAt.Format(time.RFC3339),
		formatParameters(request.Parameters),
		timeout,
		limit,
		request.Query,
	)
}

// formatParameters renders parameters as {key=value, ...} sorted by key, or "none".
func formatParameters(parameters map[string]any) string {
	if parameters == nil {
		return "none"
	}

	keys := make([]string, 0, len(parameters))
	for key := range parameters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, parameters[key]))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
