// Package domain holds the session record shape shared by the store,
// observers, and collaborator clients.
package domain

import (
	"errors"
	"strings"
)

// Session represents the authenticated restaurant owner. Its presence means
// "authenticated"; its absence means "unauthenticated". At most one session
// is active per panel instance.
type Session struct {
	// Token is the opaque bearer token presented to collaborators.
	Token string `json:"token"`
	// ID is the owner's unique identifier.
	ID string `json:"id"`
	// Username is the owner's display name.
	Username string `json:"username"`
	// RestaurantName is the name of the owner's restaurant.
	RestaurantName string `json:"restaurantName"`
	// Email is the owner's login email.
	Email string `json:"email"`
	// Avatar is an optional reference to the owner's avatar image.
	Avatar string `json:"avatar,omitempty"`
}

var (
	// ErrEmptyID indicates a session without an owner identifier.
	ErrEmptyID = errors.New("session id is required")
	// ErrEmptyToken indicates a session without a bearer token.
	ErrEmptyToken = errors.New("session token is required")
)

// Validate checks the session has the fields every collaborator call depends
// on. Display fields are optional.
func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Token) == "" {
		return ErrEmptyToken
	}
	return nil
}

// IsZero reports whether the session carries no data.
func (s Session) IsZero() bool {
	return s == Session{}
}
