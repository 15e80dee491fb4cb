package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// CreateRepositoryController creates a repository from query parameters.
type CreateRepositoryController struct {
	command commands.CreateRepository
}

// NewCreateRepositoryController creates a new CreateRepositoryController.
func NewCreateRepositoryController(command commands.CreateRepository) *CreateRepositoryController {
	return &CreateRepositoryController{command: command}
}

func (it *CreateRepositoryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/auth/repositories",
		Summary: "Create a GitHub repository",
	}
}

func (it *CreateRepositoryController) Execute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	response := it.command.Execute(r.Context(), SessionFromContext(r.Context()), entities.RepositoryDescriptor{
		Name:        query.Get("name"),
		Description: query.Get("description"),
	})
	writeProviderResponse(w, response, http.StatusCreated)
}
