package handler

import (
	"net/http"
	"time"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/server/middleware"
	"github.com/chadmarket/backoffice/internal/service"
)

// SessionHandler implements login, logout, and session introspection.
type SessionHandler struct {
	auth          *service.Auth
	secureCookies bool
}

// NewSessionHandler creates the session handler. secureCookies should be
// true everywhere except local development over plain HTTP.
func NewSessionHandler(auth *service.Auth, secureCookies bool) *SessionHandler {
	return &SessionHandler{auth: auth, secureCookies: secureCookies}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the session payload returned by Login and Current.
// The token itself travels only in the cookie.
type sessionResponse struct {
	Email      string          `json:"email"`
	Name       string          `json:"name,omitempty"`
	Role       model.AdminRole `json:"role"`
	RoleLabel  string          `json:"role_label"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	Navigation []model.NavLink `json:"navigation"`
}

// Login authenticates the admin and sets the session cookies.
// POST /api/v1/session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setCookie(w, model.AuthCookie, sess.Token, sess.ExpiresAt)
	// The role cookie is a display hint only; authorization always reads
	// the role claim inside the signed token.
	h.setCookie(w, model.RoleCookie, string(sess.Role), sess.ExpiresAt)

	writeJSON(w, http.StatusOK, sessionResponse{
		Email:      sess.Email,
		Name:       sess.Name,
		Role:       sess.Role,
		RoleLabel:  sess.Role.Label(),
		ExpiresAt:  &sess.ExpiresAt,
		Navigation: model.NavigationFor(sess.Role),
	})
}

// Logout revokes the provider session and clears both cookies. Always
// succeeds from the browser's point of view.
// DELETE /api/v1/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(model.AuthCookie); err == nil {
		token = c.Value
	}
	_ = h.auth.Logout(r.Context(), token)

	h.clearCookie(w, model.AuthCookie)
	h.clearCookie(w, model.RoleCookie)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Current returns the authenticated principal and its navigation entries.
// GET /api/v1/session
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Email:      principal.Email,
		Role:       principal.Role,
		RoleLabel:  principal.Role.Label(),
		Navigation: model.NavigationFor(principal.Role),
	})
}

func (h *SessionHandler) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *SessionHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
