package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/NotionPet_Go/internal/logger"
)

// maxRequestBodyBytes caps JSON bodies; settings payloads are a few KiB at most
const maxRequestBodyBytes = 1 << 20

// ValidationErrorResponse is returned with 400 when a body fails validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest reads a JSON body into req and validates it. On a
// non-nil error the response has been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context()).With("action", actionName)

	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
		} else {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		}
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Debug(LogMsgValidationFailed, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// requireUser returns the authenticated user id set by the auth middleware.
// If ok is false, the HTTP response has already been written.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := logger.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgAuthFailedError)
		return "", false
	}
	return userID, true
}

var errBadQuery = errors.New("bad query parameter")

// queryInt reads a non-negative integer, def when absent
func queryInt(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errBadQuery
	}
	return n, nil
}

// queryTime reads an RFC 3339 timestamp, nil when absent
func queryTime(q url.Values, key string) (*time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errBadQuery
	}
	return &t, nil
}
