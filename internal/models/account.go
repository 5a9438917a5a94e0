package models

import (
	"fmt"
	"regexp"
	"time"
)

// Account is a registered end-user identity issued by the external provider.
// The email doubles as the favorites document key.
type Account struct {
	Email       string
	DisplayName string
	LocalID     string
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether the address is plausibly deliverable.
// The provider enforces the authoritative policy; this is a pre-flight check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Session is the provider-issued session cached locally between CLI
// invocations, the analog of an SDK's in-memory session. At most one row
// exists at a time.
type Session struct {
	Email        string
	DisplayName  string
	LocalID      string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account returns the account view of the session.
func (s *Session) Account() Account {
	return Account{Email: s.Email, DisplayName: s.DisplayName, LocalID: s.LocalID}
}

// Expired reports whether the ID token has passed its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Validate checks the session has the fields every downstream caller relies on.
func (s *Session) Validate() error {
	if s.Email == "" {
		return fmt.Errorf("session missing email")
	}
	if s.IDToken == "" {
		return fmt.Errorf("session missing id token")
	}
	if s.RefreshToken == "" {
		return fmt.Errorf("session missing refresh token")
	}
	return nil
}
