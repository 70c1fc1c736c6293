package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Pet cards and option lists encode to a few hundred bytes
const responseBufferSize = 1024

var responseBuffers = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, responseBufferSize)) },
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := responseBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBuffers.Put(buf)
	}()

	// Encode before writing headers so a payload that cannot be encoded still gets a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err, "status", status)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+": service error", "error", err)
	} else {
		log.Warn(opName+": request rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// users can act upon. Unknown errors never leak their text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrPetNotFound):
		return http.StatusNotFound, ErrMsgPetNotFoundError
	case errors.Is(err, domain.ErrSettingsNotFound):
		return http.StatusNotFound, ErrMsgSettingsNotFoundError
	case errors.Is(err, domain.ErrDatabaseNotSelected):
		return http.StatusConflict, ErrMsgDatabaseNotSelectedError
	case errors.Is(err, domain.ErrXPPropertyNotSet):
		return http.StatusConflict, ErrMsgXPPropertyNotSetError
	case errors.Is(err, domain.ErrNotionNotConnected):
		return http.StatusConflict, ErrMsgNotionNotConnectedError
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusUnprocessableEntity, ErrMsgPropertyNotFoundError
	case errors.Is(err, domain.ErrPropertyNotSelect):
		return http.StatusUnprocessableEntity, ErrMsgPropertyNotSelectError
	case errors.Is(err, domain.ErrOptionNotFound):
		return http.StatusNotFound, ErrMsgOptionNotFoundError
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, ErrMsgUpstreamError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
