package handler

import (
	"net/http"

	"github.com/chadmarket/backoffice/internal/model"
)

// MetaHandler serves the reference lists the filter controls are built from.
type MetaHandler struct{}

// NewMetaHandler creates the reference-data handler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Meta returns the city and category reference lists.
// GET /api/v1/meta
func (h *MetaHandler) Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cities":     model.Cities,
		"categories": model.Categories,
	})
}
