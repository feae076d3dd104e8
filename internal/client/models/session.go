// Package models defines client-side data models of the catering client.
package models

import "time"

// Session is the authenticated user's token and identity. It is the only
// client state persisted across runs.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`

	// ExpiresAt is read from the token's exp claim when available.
	// Informational only: the server decides whether a token is valid.
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// IsAuthenticated reports whether a token is present.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Credentials are the login form fields.
type Credentials struct {
	Email      string `json:"email" validate:"required,email"`
	Password   []byte `json:"password" validate:"min=1"`
	RememberMe bool   `json:"rememberMe"`
}
