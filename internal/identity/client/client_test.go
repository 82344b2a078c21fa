package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-owner-panel/internal/api"
	"restaurant-owner-panel/internal/session/domain"
)

func TestNewDefaults(t *testing.T) {
	c := New("http://identity.test")
	if c.BaseURL != "http://identity.test" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.HTTPClient == nil {
		t.Fatal("HTTPClient should be set")
	}
	if c.HTTPClient.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.HTTPClient.Timeout, defaultTimeout)
	}
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/login" {
			t.Errorf("path = %q, want /login", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID should be set")
		}

		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds.Email != "ana@trattoria.test" {
			t.Errorf("email = %q", creds.Email)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok","id":"u1","username":"Ana","restaurantName":"Trattoria","email":"ana@trattoria.test"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	record, err := c.Login(context.Background(), Credentials{Email: "ana@trattoria.test", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if record.ID != "u1" || record.Token != "tok" || record.Username != "Ana" {
		t.Fatalf("record = %+v", record)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), Credentials{Email: "ana@trattoria.test", Password: "wrong"})
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetSessionSendsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/u1" {
			t.Errorf("path = %q, want /session/u1", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		w.Write([]byte(`{"token":"tok","id":"u1","username":"Ana"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	record, err := c.GetSession(context.Background(), "tok", "u1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if record.Username != "Ana" {
		t.Fatalf("record = %+v", record)
	}
}

func TestGetSessionNotFoundIsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetSession(context.Background(), "tok", "gone")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("identity 404 must map to ErrUnauthorized, got %v", err)
	}
}

func TestGetSessionServerErrorIsUnavailableNotAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.GetSession(context.Background(), "tok", "u1")
	if !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if errors.Is(err, api.ErrUnauthorized) {
		t.Fatal("5xx must not be treated as an authentication failure")
	}
}

func TestGetSessionTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL)
	_, err := c.GetSession(context.Background(), "tok", "u1")
	if !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestVerifyOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/verify-otp" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["code"] != "123456" {
			t.Errorf("code = %q", body["code"])
		}
		w.Write([]byte(`{"token":"tok","id":"u1"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	record, err := c.VerifyOTP(context.Background(), "ana@trattoria.test", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if record.ID != "u1" {
		t.Fatalf("record = %+v", record)
	}
}

func TestResetPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reset-password" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.ResetPassword(context.Background(), ResetPasswordInput{Email: "ana@trattoria.test", Code: "123456", NewPassword: "new"})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		if r.URL.Path != "/session/u1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok","id":"u1","username":"Ana Maria"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	current := domain.Session{ID: "u1", Token: "tok", Username: "Ana"}
	record, err := c.UpdateProfile(context.Background(), current, ProfileUpdate{Username: "Ana Maria"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if record.Username != "Ana Maria" {
		t.Fatalf("record = %+v", record)
	}
}

func TestDecodeRejectsSessionWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Login(context.Background(), Credentials{}); err == nil {
		t.Fatal("expected error for session record without id")
	}
}
