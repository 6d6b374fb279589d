package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chadmarket/backoffice/internal/service"
)

// VerificationsHandler serves the merchant KYC review queue.
type VerificationsHandler struct {
	verifications *service.Verifications
}

// NewVerificationsHandler creates the KYC review handler.
func NewVerificationsHandler(verifications *service.Verifications) *VerificationsHandler {
	return &VerificationsHandler{verifications: verifications}
}

// List returns applications awaiting review, newest first.
// GET /api/v1/verifications
func (h *VerificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	pending, err := h.verifications.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, pending, len(pending))
}

// Document returns a short-lived signed link for the applicant's identity
// document.
// GET /api/v1/verifications/{accountID}/document
func (h *VerificationsHandler) Document(w http.ResponseWriter, r *http.Request) {
	url, err := h.verifications.DocumentLink(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		// Unwrapped means the applicant never submitted a document, as
		// opposed to a failed signing request.
		if err == service.ErrDocumentUnavailable {
			writeError(w, http.StatusNotFound, "No identity document on file", "document_unavailable")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":        url,
		"expires_in": int(service.DocumentLinkTTL.Seconds()),
	})
}

// Approve marks the application verified and the account a merchant.
// POST /api/v1/verifications/{accountID}/approve
func (h *VerificationsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.verifications.Approve(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject marks the application rejected with the reviewer's reason.
// POST /api/v1/verifications/{accountID}/reject
func (h *VerificationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.verifications.Reject(r.Context(), chi.URLParam(r, "accountID"), req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
