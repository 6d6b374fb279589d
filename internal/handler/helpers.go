package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/service"
)

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error response using the standard error
// envelope.
func writeError(w http.ResponseWriter, code int, message string, kind ...string) {
	var k string
	if len(kind) > 0 {
		k = kind[0]
	}
	writeJSON(w, code, model.ErrorResponse{
		Error: model.ErrorDetail{
			Code:    code,
			Message: message,
			Kind:    k,
		},
	})
}

// readJSON decodes the request body as JSON into v. The body is closed after
// decoding regardless of success or failure.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeList wraps items in the standard list envelope.
func writeList(w http.ResponseWriter, items interface{}, count int) {
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: items,
		Meta:     &model.ResponseMeta{Count: count},
	})
}

// writeServiceError maps the shared service error taxonomy onto HTTP status
// codes. Errors outside the taxonomy become 500s with a generic message so
// backend details never leak to the browser.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password", "invalid_credentials")
	case errors.Is(err, service.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "This account has no administrator access", "not_authorized")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "validation")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", "not_found")
	case errors.Is(err, service.ErrDecisionInFlight):
		writeError(w, http.StatusConflict, "A decision for this item is already being processed", "decision_in_flight")
	case errors.Is(err, service.ErrDocumentUnavailable):
		writeError(w, http.StatusBadGateway, "The identity document could not be opened", "document_unavailable")
	case errors.Is(err, service.ErrUpdateFailed):
		writeError(w, http.StatusBadGateway, "The change was not applied, reload and try again", "update_failed")
	default:
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

// queryString extracts a string query parameter.
func queryString(r *http.Request, key string) string {
	return r.URL.Query().Get(key)
}
