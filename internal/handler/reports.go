package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chadmarket/backoffice/internal/service"
)

// ReportsHandler serves the listing-report moderation queue.
type ReportsHandler struct {
	moderation *service.Moderation
}

// NewReportsHandler creates the report moderation handler.
func NewReportsHandler(moderation *service.Moderation) *ReportsHandler {
	return &ReportsHandler{moderation: moderation}
}

// List returns open reports newest first, joined with listing and reporter.
// GET /api/v1/reports
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	pending, err := h.moderation.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, pending, len(pending))
}

// Dismiss closes a report without touching the listing.
// POST /api/v1/reports/{reportID}/dismiss
func (h *ReportsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	if err := h.moderation.Dismiss(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type resolveRequest struct {
	Action  string `json:"action"` // "delete_listing" or "suspend_seller"
	Confirm bool   `json:"confirm"`
}

// Resolve closes a report by acting on the listing or its seller. Both
// actions are destructive and require an explicit confirm flag.
// POST /api/v1/reports/{reportID}/resolve
func (h *ReportsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusUnprocessableEntity, "Resolution requires confirmation", "validation")
		return
	}

	reportID := chi.URLParam(r, "reportID")
	var err error
	switch req.Action {
	case "delete_listing":
		err = h.moderation.DeleteListingAndResolve(r.Context(), reportID)
	case "suspend_seller":
		err = h.moderation.SuspendSellerAndResolve(r.Context(), reportID)
	default:
		writeError(w, http.StatusBadRequest, "Unknown resolution action: "+req.Action)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
