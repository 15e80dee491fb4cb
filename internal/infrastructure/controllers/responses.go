package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/sqlplayground/internal/domain/entities"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes JSON responses with a consistent content type.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

// writeFailure renders {"error": "..."} with the status matching the failure kind.
func writeFailure(w http.ResponseWriter, failure *entities.Failure) {
	writeJSON(w, statusForFailure(failure.Kind), failure)
}

// writeProviderResponse renders a provider result. Successful bodies are written
// exactly as the provider returned them.
func writeProviderResponse(w http.ResponseWriter, response entities.ProviderResponse, successStatus int) {
	if response.IsFailure() {
		writeFailure(w, response.Failure)
		return
	}
	body, err := response.MarshalJSON()
	if err != nil {
		logger.Errorf("Failed to encode response: %v", err)
		writeFailure(w, &entities.Failure{Kind: entities.FailureInternal, Message: "Failed to encode response"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	if _, err = w.Write(body); err != nil {
		logger.Errorf("Failed to write response: %v", err)
	}
}

func statusForFailure(kind entities.FailureKind) int {
	switch kind {
	case entities.FailureUnauthenticated:
		return http.StatusUnauthorized
	case entities.FailureValidation, entities.FailureProvider:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into target.
func decodeJSON(r *http.Request, target any) *entities.Failure {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return &entities.Failure{Kind: entities.FailureValidation, Message: "Request body is required"}
		}
		return &entities.Failure{
			Kind:    entities.FailureValidation,
			Message: fmt.Sprintf("Invalid request body: %v", err),
		}
	}
	return nil
}
