// Package client implements the HTTP client for the identity collaborator.
// The panel treats every endpoint here as an opaque producer of the session
// record; credential checking, OTP delivery, and token signing all happen
// server-side.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurant-owner-panel/internal/api"
	"restaurant-owner-panel/internal/session/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the identity service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the identity service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Credentials are the owner's login inputs.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput describes a new owner registration.
type SignupInput struct {
	Username       string `json:"username"`
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username       string `json:"username,omitempty"`
	RestaurantName string `json:"restaurantName,omitempty"`
	Email          string `json:"email,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// ResetPasswordInput carries a password reset request.
type ResetPasswordInput struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// GetSession fetches the authoritative session record for the given owner.
// A 404 means the session no longer exists and maps to api.ErrUnauthorized,
// not a missing-resource rejection.
func (c *Client) GetSession(ctx context.Context, token, ownerID string) (domain.Session, error) {
	op := "identity: get session"
	req, err := api.NewRequest(ctx, http.MethodGet, fmt.Sprintf("%s/session/%s", c.BaseURL, ownerID), token, nil)
	if err != nil {
		return domain.Session{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Session{}, api.TransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return domain.Session{}, api.AuthError(op, resp.StatusCode, string(body))
	}
	return decodeSession(op, resp)
}

// Login exchanges credentials for a session record.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.Session, error) {
	return c.postForSession(ctx, "identity: login", "/login", creds)
}

// Signup registers a new owner. The service responds with a session record
// once registration (and any server-side OTP issuance) succeeds.
func (c *Client) Signup(ctx context.Context, input SignupInput) (domain.Session, error) {
	return c.postForSession(ctx, "identity: signup", "/signup", input)
}

// VerifyOTP confirms the one-time code sent to the owner and yields the
// session record.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (domain.Session, error) {
	payload := map[string]string{"email": email, "code": code}
	return c.postForSession(ctx, "identity: verify otp", "/verify-otp", payload)
}

// ResetPassword submits a password reset. No session record is produced; the
// owner logs in again afterwards.
func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	op := "identity: reset password"
	req, err := api.NewRequest(ctx, http.MethodPost, c.BaseURL+"/reset-password", "", input)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return api.TransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return api.StatusError(op, resp.StatusCode, string(body))
	}
	return nil
}

// UpdateProfile saves profile edits and returns the refreshed session record.
func (c *Client) UpdateProfile(ctx context.Context, current domain.Session, update ProfileUpdate) (domain.Session, error) {
	op := "identity: update profile"
	req, err := api.NewRequest(ctx, http.MethodPut, fmt.Sprintf("%s/session/%s", c.BaseURL, current.ID), current.Token, update)
	if err != nil {
		return domain.Session{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Session{}, api.TransportError(op, err)
	}
	defer resp.Body.Close()

	return decodeSession(op, resp)
}

func (c *Client) postForSession(ctx context.Context, op, path string, payload any) (domain.Session, error) {
	req, err := api.NewRequest(ctx, http.MethodPost, c.BaseURL+path, "", payload)
	if err != nil {
		return domain.Session{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return domain.Session{}, api.TransportError(op, err)
	}
	defer resp.Body.Close()

	return decodeSession(op, resp)
}

func decodeSession(op string, resp *http.Response) (domain.Session, error) {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Session{}, api.StatusError(op, resp.StatusCode, string(body))
	}
	var record domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return domain.Session{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if err := record.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}
