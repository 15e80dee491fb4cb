package controllers

import (
	"net/http"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// HealthController answers liveness probes.
type HealthController struct{}

// NewHealthController creates a new HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

func (it *HealthController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{Method: http.MethodGet, Path: "/health", Summary: "Liveness probe"}
}

func (it *HealthController) Execute(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
