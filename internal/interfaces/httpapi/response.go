package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-livescore/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-livescore/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-livescore"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope(mapped, message))
}

func errorEnvelope(mapped mappedError, message string) googleResponseEnvelope {
	return googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	}
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is checked in order; the first rule with a matching sentinel wins.
var errorRules = []struct {
	sentinels []error
	mapped    mappedError
}{
	{
		sentinels: []error{
			usecase.ErrMalformedSquad,
			fantasy.ErrInvalidSquadSize,
			fantasy.ErrInvalidSquadSlot,
			fantasy.ErrDuplicatePlayerInSquad,
			fantasy.ErrInvalidCaptaincy,
			fantasy.ErrInvalidMultiplier,
		},
		mapped: mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "malformedSquad", Status: "FAILED_PRECONDITION"},
	},
	{
		sentinels: []error{usecase.ErrInvalidInput},
		mapped:    mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		sentinels: []error{usecase.ErrNotFound},
		mapped:    mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		sentinels: []error{usecase.ErrUnauthorized},
		mapped:    mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		sentinels: []error{usecase.ErrDependencyUnavailable},
		mapped:    mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, sentinel := range rule.sentinels {
			if errors.Is(err, sentinel) {
				return rule.mapped
			}
		}
	}
	return internalError
}
