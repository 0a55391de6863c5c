package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"leaguehq-backend/internal/logger"
	"leaguehq-backend/internal/service"
)

// Success responses are wrapped in {"data": ...}; failures in
// {"error": ..., "field_errors": ...}.
type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Limit       any               `json:"limit,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		env := errorEnvelope{Error: svcErr.Message, FieldErrors: svcErr.FieldErrors}
		if svcErr.LimitInfo != nil {
			env.Limit = svcErr.LimitInfo
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusForKind(svcErr.Kind))
		if encErr := json.NewEncoder(w).Encode(env); encErr != nil {
			logger.Error("failed to encode error response", "error", encErr)
		}
		return
	}

	logger.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: "internal server error"})
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindPermission:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict, service.KindLimit:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, service.Invalid(map[string]string{"body": "invalid JSON body"}))
		return false
	}
	return true
}
