package controllers

import (
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/commands"
	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

type establishSessionRequest struct {
	AccessToken string `json:"access_token"`
}

// EstablishSessionController exchanges an upstream-issued access token for a
// session cookie.
type EstablishSessionController struct {
	command    commands.EstablishSession
	middleware *SessionMiddleware
}

// NewEstablishSessionController creates a new EstablishSessionController.
func NewEstablishSessionController(
	command commands.EstablishSession,
	middleware *SessionMiddleware,
) *EstablishSessionController {
	return &EstablishSessionController{command: command, middleware: middleware}
}

func (it *EstablishSessionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodPost,
		Path:    "/api/v1/auth/session",
		Summary: "Establish a session from a GitHub access token",
	}
}

func (it *EstablishSessionController) Execute(w http.ResponseWriter, r *http.Request) {
	var request establishSessionRequest
	if failure := decodeJSON(r, &request); failure != nil {
		writeFailure(w, failure)
		return
	}

	established, failure := it.command.Execute(r.Context(), request.AccessToken)
	if failure != nil {
		// the provider rejected the token
		if failure.Kind == entities.FailureProvider {
			failure.Kind = entities.FailureUnauthenticated
		}
		writeFailure(w, failure)
		return
	}

	it.middleware.SetCookie(w, established.Credential, established.Session.ExpiresAt)
	writeJSON(w, http.StatusCreated, established.Profile)
}

// EndSessionController signs the caller out.
type EndSessionController struct {
	command    commands.EndSession
	middleware *SessionMiddleware
}

// NewEndSessionController creates a new EndSessionController.
func NewEndSessionController(command commands.EndSession, middleware *SessionMiddleware) *EndSessionController {
	return &EndSessionController{command: command, middleware: middleware}
}

func (it *EndSessionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Method:  http.MethodDelete,
		Path:    "/api/v1/auth/session",
		Summary: "End the current session",
	}
}

func (it *EndSessionController) Execute(w http.ResponseWriter, r *http.Request) {
	if err := it.command.Execute(r.Context(), SessionFromContext(r.Context())); err != nil {
		logger.Errorf("Failed to end session: %v", err)
	}
	it.middleware.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
