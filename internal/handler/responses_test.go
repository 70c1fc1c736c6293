package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidRequestError},
		{domain.ErrUnauthorized, http.StatusUnauthorized, ErrMsgAuthFailedError},
		{domain.ErrPetNotFound, http.StatusNotFound, ErrMsgPetNotFoundError},
		{domain.ErrDatabaseNotSelected, http.StatusConflict, ErrMsgDatabaseNotSelectedError},
		{domain.ErrXPPropertyNotSet, http.StatusConflict, ErrMsgXPPropertyNotSetError},
		{domain.ErrNotionNotConnected, http.StatusConflict, ErrMsgNotionNotConnectedError},
		{domain.ErrPropertyNotFound, http.StatusUnprocessableEntity, ErrMsgPropertyNotFoundError},
		{domain.ErrOptionNotFound, http.StatusNotFound, ErrMsgOptionNotFoundError},
		{fmt.Errorf("%w: 503", domain.ErrUpstream), http.StatusBadGateway, ErrMsgUpstreamError},
		{domain.ErrDatabaseError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	t.Run("encodes payload with status", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondJSON(w, http.StatusCreated, SuccessResponse{Message: "saved"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, `{"message":"saved"}`+"\n", w.Body.String())
	})

	t.Run("unencodable payload becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondJSON(w, http.StatusOK, map[string]interface{}{"fn": func() {}})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	})

	t.Run("buffers are reset between responses", func(t *testing.T) {
		first := httptest.NewRecorder()
		respondJSON(first, http.StatusOK, ErrorResponse{Error: "a long message that fills the buffer"})
		second := httptest.NewRecorder()
		respondJSON(second, http.StatusOK, ErrorResponse{Error: "b"})

		assert.Equal(t, `{"error":"b"}`+"\n", second.Body.String())
	})
}
