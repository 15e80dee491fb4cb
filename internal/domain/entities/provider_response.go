package entities

import (
	"encoding/json"
	"fmt"
)

// FailureKind classifies why an operation did not reach a provider result.
type FailureKind string

const (
	FailureUnauthenticated FailureKind = "unauthenticated"
	FailureValidation      FailureKind = "validation"
	FailureProvider        FailureKind = "provider"
	FailureInternal        FailureKind = "internal"
)

// MessageNoAccessToken is returned whenever a session carries no usable token.
const MessageNoAccessToken = "No access token available"

// Failure is the normalized error envelope returned instead of a provider result.
type Failure struct {
	Kind    FailureKind `json:"-"`
	Message string      `json:"error"`
}

// ProviderResponse is the result of a provider operation: either the provider's
// raw JSON body, passed through untouched, or a Failure. A failed list still
// carries an empty array body so it can be rendered as a sequence.
type ProviderResponse struct {
	Body    json.RawMessage
	Failure *Failure
}

// Succeeded wraps a raw provider body.
func Succeeded(body json.RawMessage) ProviderResponse {
	return ProviderResponse{Body: body}
}

// Failed builds a failure response with an optional fallback body.
func Failed(kind FailureKind, message string, body json.RawMessage) ProviderResponse {
	return ProviderResponse{Body: body, Failure: &Failure{Kind: kind, Message: message}}
}

// Unauthenticated is the failure for sessions without an access token.
func Unauthenticated(body json.RawMessage) ProviderResponse {
	return Failed(FailureUnauthenticated, MessageNoAccessToken, body)
}

// ProviderFailed formats a provider failure as "<prefix>: <cause>".
func ProviderFailed(prefix string, cause error, body json.RawMessage) ProviderResponse {
	return Failed(FailureProvider, fmt.Sprintf("%s: %v", prefix, cause), body)
}

// IsFailure reports whether the response carries an error envelope.
func (r ProviderResponse) IsFailure() bool {
	return r.Failure != nil
}

// MarshalJSON renders failures as {"error": "..."} and successes as the raw body.
func (r ProviderResponse) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if len(r.Body) == 0 {
		return []byte("null"), nil
	}
	return r.Body, nil
}

// Items decodes a successful array body into its raw elements.
func (r ProviderResponse) Items() ([]json.RawMessage, error) {
	items := make([]json.RawMessage, 0)
	if len(r.Body) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(r.Body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode provider array: %w", err)
	}
	return items, nil
}
