package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// StatusController reports whether the caller is signed in.
type StatusController struct {
	command commands.GetProfile
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.GetProfile) *StatusController {
	return &StatusController{command: command}
}

func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodGet,
		Path:    "/api/v1/auth/status",
		Summary: "Get the authentication status",
	}
}

func (it *StatusController) Execute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, it.command.Status(SessionFromContext(r.Context())))
}
