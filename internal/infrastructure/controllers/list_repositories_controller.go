package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// ListRepositoriesController lists the caller's provider repositories.
type ListRepositoriesController struct {
	command commands.ListRepositories
}

// NewListRepositoriesController creates a new ListRepositoriesController.
func NewListRepositoriesController(command commands.ListRepositories) *ListRepositoriesController {
	return &ListRepositoriesController{command: command}
}

func (it *ListRepositoriesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodGet,
		Path:    "/api/v1/auth/repositories",
		Summary: "List the user's GitHub repositories",
	}
}

func (it *ListRepositoriesController) Execute(w http.ResponseWriter, r *http.Request) {
	response := it.command.Execute(r.Context(), SessionFromContext(r.Context()))
	writeProviderResponse(w, response, http.StatusOK)
}
