package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIdentitySignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("grant_type: got %q", r.URL.Query().Get("grant_type"))
		}
		if r.Header.Get("apikey") != "svc-key" {
			t.Errorf("apikey header: got %q", r.Header.Get("apikey"))
		}

		var req signInRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "admin@example.com" {
			t.Errorf("email: got %q", req.Email)
		}

		if req.Password != "good" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		json.NewEncoder(w).Encode(signInResponse{AccessToken: "provider-token", TokenType: "bearer", ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := NewIdentityClient(srv.URL, "svc-key")
	ctx := context.Background()

	token, err := c.SignIn(ctx, "admin@example.com", "good")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token != "provider-token" {
		t.Errorf("token: got %q", token)
	}

	if _, err := c.SignIn(ctx, "admin@example.com", "bad"); err != ErrSignInRejected {
		t.Errorf("bad password: got %v, want ErrSignInRejected", err)
	}
}

func TestIdentitySignOutIdempotent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if calls == 1 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		// Session already gone.
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewIdentityClient(srv.URL, "svc-key")
	if err := c.SignOut(context.Background(), "tok"); err != nil {
		t.Fatalf("first SignOut: %v", err)
	}
	if err := c.SignOut(context.Background(), "tok"); err != nil {
		t.Fatalf("second SignOut should be idempotent: %v", err)
	}
}

func TestStorageSignedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "/storage/v1/object/sign/documents/kyc/u1/id.png"
		if r.URL.Path != want {
			t.Errorf("path: got %q, want %q", r.URL.Path, want)
		}
		var req signRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ExpiresIn != 60 {
			t.Errorf("expiresIn: got %d, want 60", req.ExpiresIn)
		}
		json.NewEncoder(w).Encode(signResponse{SignedURL: "/object/sign/documents/kyc/u1/id.png?token=abc"})
	}))
	defer srv.Close()

	c := NewStorageClient(srv.URL, "svc-key", "documents")
	url, err := c.SignedURL(context.Background(), "kyc/u1/id.png", 60*time.Second)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	want := srv.URL + "/storage/v1/object/sign/documents/kyc/u1/id.png?token=abc"
	if url != want {
		t.Errorf("url: got %q, want %q", url, want)
	}
}

func TestStorageSignedURLFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewStorageClient(srv.URL, "svc-key", "documents")
	if _, err := c.SignedURL(context.Background(), "missing.png", time.Minute); err == nil {
		t.Fatal("expected error for missing object")
	}
}
