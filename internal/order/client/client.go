// Package client implements the HTTP client for the order collaborator.
// Status transitions are success-or-fail with no partial application; the
// caller mutates local state only after an acknowledged success.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurant-owner-panel/internal/api"
	"restaurant-owner-panel/internal/order/domain"
	sessiondomain "restaurant-owner-panel/internal/session/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the order service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for the order service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// List fetches the owner's orders.
func (c *Client) List(ctx context.Context, sess sessiondomain.Session) ([]domain.Order, error) {
	op := "orders: list"
	req, err := api.NewRequest(ctx, http.MethodGet, fmt.Sprintf("%s/orders/%s", c.BaseURL, sess.ID), sess.Token, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, api.TransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, api.StatusError(op, resp.StatusCode, string(body))
	}

	var orders []domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return orders, nil
}

// Count fetches the owner's order count in action-needed statuses.
func (c *Client) Count(ctx context.Context, sess sessiondomain.Session) (int, error) {
	op := "orders: count"
	req, err := api.NewRequest(ctx, http.MethodGet, fmt.Sprintf("%s/orders/%s/count", c.BaseURL, sess.ID), sess.Token, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, api.TransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, api.StatusError(op, resp.StatusCode, string(body))
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return payload.Count, nil
}

// UpdateStatus asks the service to move the order to target. A non-2xx
// response means the transition did not happen; the caller must leave its
// local record unchanged.
func (c *Client) UpdateStatus(ctx context.Context, sess sessiondomain.Session, orderID string, target domain.Status) error {
	op := "orders: update status"
	payload := map[string]domain.Status{"status": target}
	req, err := api.NewRequest(ctx, http.MethodPut, fmt.Sprintf("%s/orders/%s", c.BaseURL, orderID), sess.Token, payload)
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
