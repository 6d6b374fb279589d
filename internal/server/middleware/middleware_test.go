package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chadmarket/backoffice/internal/model"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("no request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q != context %q", got, seen)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	h := RequestID(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Fatalf("request ID: %q", got)
	}
}

func TestGuardRedirects(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		withCookie bool
		wantStatus int
		wantLoc    string
	}{
		{"anonymous page hit", "/users", false, http.StatusSeeOther, "/login"},
		{"anonymous root", "/", false, http.StatusSeeOther, "/login"},
		{"anonymous login page", "/login", false, http.StatusOK, ""},
		{"session on login page", "/login", true, http.StatusSeeOther, "/"},
		{"session on page", "/reports", true, http.StatusOK, ""},
		{"asset passes anonymously", "/assets/app.css", false, http.StatusOK, ""},
		{"api not redirected", "/api/v1/users", false, http.StatusOK, ""},
		{"health passes", "/healthz", false, http.StatusOK, ""},
	}

	h := Guard(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withCookie {
				req.AddCookie(&http.Cookie{Name: model.AuthCookie, Value: "token"})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLoc != "" && rec.Header().Get("Location") != tt.wantLoc {
				t.Fatalf("location: got %q, want %q", rec.Header().Get("Location"), tt.wantLoc)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(3)(okHandler())

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("status after burst: %d", last)
	}
}
