package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chadmarket/backoffice/internal/service"
)

// UsersHandler serves the user directory and account sanctions.
type UsersHandler struct {
	directory *service.Directory
}

// NewUsersHandler creates the user directory handler.
func NewUsersHandler(directory *service.Directory) *UsersHandler {
	return &UsersHandler{directory: directory}
}

// List returns accounts newest first, narrowed by the q, status, and city
// query parameters.
// GET /api/v1/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.DirectoryFilter{
		Query:  queryString(r, "q"),
		Status: queryString(r, "status"),
		City:   queryString(r, "city"),
	}
	accounts, err := h.directory.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeList(w, accounts, len(accounts))
}

type banRequest struct {
	Confirm bool `json:"confirm"`
}

// Ban permanently bans an account. The destructive step requires an
// explicit confirm flag so a stray click cannot ban anyone.
// POST /api/v1/users/{accountID}/ban
func (h *UsersHandler) Ban(w http.ResponseWriter, r *http.Request) {
	var req banRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusUnprocessableEntity, "Ban requires confirmation", "validation")
		return
	}

	if err := h.directory.Ban(r.Context(), chi.URLParam(r, "accountID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
