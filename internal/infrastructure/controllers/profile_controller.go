package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// ProfileController returns the caller's profile.
type ProfileController struct {
	command commands.GetProfile
}

// NewProfileController creates a new ProfileController.
func NewProfileController(command commands.GetProfile) *ProfileController {
	return &ProfileController{command: command}
}

func (it *ProfileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodGet,
		Path:    "/api/v1/auth/profile",
		Summary: "Get the authenticated user's profile",
	}
}

func (it *ProfileController) Execute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, it.command.Execute(SessionFromContext(r.Context())))
}
