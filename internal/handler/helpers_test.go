package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/service"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrNotAuthorized, http.StatusForbidden},
		{fmt.Errorf("%w: rejection reason is required", service.ErrValidation), http.StatusUnprocessableEntity},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrDecisionInFlight, http.StatusConflict},
		{fmt.Errorf("%w: sign failed", service.ErrDocumentUnavailable), http.StatusBadGateway},
		{fmt.Errorf("%w: no rows", service.ErrUpdateFailed), http.StatusBadGateway},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeServiceError(rec, tt.err)
		if rec.Code != tt.want {
			t.Errorf("writeServiceError(%v) = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestUnknownErrorsDoNotLeakDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("pq: password authentication failed for user admin"))

	var resp model.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Message != "Internal error" {
		t.Errorf("message = %q, backend detail leaked", resp.Error.Message)
	}
}
