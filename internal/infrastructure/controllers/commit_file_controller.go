package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// CommitFileController writes a file into one of the caller's repositories.
type CommitFileController struct {
	command commands.CommitFile
}

// NewCommitFileController creates a new CommitFileController.
func NewCommitFileController(command commands.CommitFile) *CommitFileController {
	return &CommitFileController{command: command}
}

func (it *CommitFileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/auth/repositories/{owner}/{repo}/files",
		Summary: "Commit a file to a GitHub repository",
	}
}

func (it *CommitFileController) Execute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	response := it.command.Execute(r.Context(), SessionFromContext(r.Context()), entities.FileCommit{
		Owner:   r.PathValue("owner"),
		Repo:    r.PathValue("repo"),
		Path:    query.Get("path"),
		Content: query.Get("content"),
		Message: query.Get("message"),
	})
	writeProviderResponse(w, response, http.StatusOK)
}
