package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// memSessions is an in-memory SessionStore for identity tests.
type memSessions struct {
	session *models.Session
	saveErr error
}

func (m *memSessions) Load() (*models.Session, error) { return m.session, nil }

func (m *memSessions) Save(session *models.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = session
	return nil
}

func (m *memSessions) Clear() error {
	m.session = nil
	return nil
}

func identityFixture(t *testing.T, handler http.HandlerFunc) (*IdentityService, *memSessions) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := &memSessions{}
	cfg := shared.IdentityConfig{
		BaseURL:  server.URL,
		TokenURL: server.URL + "/token",
		APIKey:   "test-key",
	}

	svc, err := NewIdentityService(cfg, sessions, server.Client())
	if err != nil {
		t.Fatalf("failed to create identity service: %v", err)
	}
	return svc, sessions
}

func authOK(w http.ResponseWriter, email string) {
	json.NewEncoder(w).Encode(map[string]any{
		"localId":      "local-1",
		"email":        email,
		"idToken":      "id-token-1",
		"refreshToken": "refresh-token-1",
		"expiresIn":    "3600",
	})
}

func authErr(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": code}})
}

func TestNewIdentityService(t *testing.T) {
	t.Run("Missing API Key", func(t *testing.T) {
		_, err := NewIdentityService(shared.IdentityConfig{BaseURL: "http://example.com"}, &memSessions{}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Missing Base URL", func(t *testing.T) {
		_, err := NewIdentityService(shared.IdentityConfig{APIKey: "key"}, &memSessions{}, nil)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestIdentityService(t *testing.T) {
	ctx := context.Background()

	t.Run("SignUp", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") != "test-key" {
				t.Error("expected key query parameter")
			}

			switch {
			case strings.Contains(r.URL.Path, "accounts:signUp"):
				authOK(w, "new@example.com")
			case strings.Contains(r.URL.Path, "accounts:update"):
				var body map[string]any
				json.NewDecoder(r.Body).Decode(&body)
				if body["displayName"] != "New User" {
					t.Errorf("expected display name in update, got %v", body["displayName"])
				}
				authOK(w, "new@example.com")
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		})

		account, err := svc.SignUp(ctx, "new@example.com", "hunter22", "New User")
		if err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}

		if account.Email != "new@example.com" {
			t.Errorf("expected account email, got %s", account.Email)
		}

		if account.DisplayName != "New User" {
			t.Errorf("expected display name set, got %s", account.DisplayName)
		}

		if sessions.session == nil {
			t.Fatal("expected session cached after sign up")
		}
	})

	t.Run("SignUpInvalidEmail", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("provider should not be contacted for invalid email")
		})

		if _, err := svc.SignUp(ctx, "not-an-email", "hunter22", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("SignUpDuplicateEmail", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authErr(w, http.StatusBadRequest, "EMAIL_EXISTS")
		})

		if _, err := svc.SignUp(ctx, "taken@example.com", "hunter22", ""); !errors.Is(err, shared.ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("SignUpWeakPassword", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authErr(w, http.StatusBadRequest, "WEAK_PASSWORD : Password should be at least 6 characters")
		})

		if _, err := svc.SignUp(ctx, "new@example.com", "abc", ""); !errors.Is(err, shared.ErrWeakCredential) {
			t.Errorf("expected ErrWeakCredential, got %v", err)
		}
	})

	t.Run("SignIn", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, "accounts:signInWithPassword") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			authOK(w, "user@example.com")
		})

		account, err := svc.SignIn(ctx, "user@example.com", "hunter22")
		if err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}

		if account.Email != "user@example.com" {
			t.Errorf("expected account email, got %s", account.Email)
		}

		if current := svc.CurrentAccount(); current == nil || current.Email != "user@example.com" {
			t.Errorf("expected current account after sign in, got %+v", current)
		}

		if sessions.session.RefreshToken != "refresh-token-1" {
			t.Error("expected refresh token cached")
		}
	})

	t.Run("SignInWrongPassword", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authErr(w, http.StatusBadRequest, "INVALID_PASSWORD")
		})

		if _, err := svc.SignIn(ctx, "user@example.com", "nope"); !errors.Is(err, shared.ErrInvalidCredential) {
			t.Errorf("expected ErrInvalidCredential, got %v", err)
		}
	})

	t.Run("SignOut", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authOK(w, "user@example.com")
		})

		if _, err := svc.SignIn(ctx, "user@example.com", "hunter22"); err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}

		if err := svc.SignOut(ctx); err != nil {
			t.Fatalf("failed to sign out: %v", err)
		}

		if sessions.session != nil {
			t.Error("expected session cleared")
		}

		if svc.CurrentAccount() != nil {
			t.Error("expected nil current account after sign out")
		}
	})

	t.Run("OnAuthChange", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authOK(w, "user@example.com")
		})

		var events []*models.Account
		unsubscribe := svc.OnAuthChange(func(account *models.Account) {
			events = append(events, account)
		})

		if _, err := svc.SignIn(ctx, "user@example.com", "hunter22"); err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}
		if err := svc.SignOut(ctx); err != nil {
			t.Fatalf("failed to sign out: %v", err)
		}

		if len(events) != 2 {
			t.Fatalf("expected 2 auth events, got %d", len(events))
		}
		if events[0] == nil || events[0].Email != "user@example.com" {
			t.Errorf("expected sign-in event with account, got %+v", events[0])
		}
		if events[1] != nil {
			t.Errorf("expected nil sign-out event, got %+v", events[1])
		}

		unsubscribe()
		if _, err := svc.SignIn(ctx, "user@example.com", "hunter22"); err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}
		if len(events) != 2 {
			t.Error("expected no events after unsubscribe")
		}
	})

	t.Run("Reauthenticate", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			authOK(w, "user@example.com")
		})
		sessions.session = &models.Session{
			Email:        "user@example.com",
			LocalID:      "local-1",
			IDToken:      "stale-token",
			RefreshToken: "refresh-token-0",
			ExpiresAt:    time.Now().Add(-time.Hour),
		}

		if err := svc.Reauthenticate(ctx, "hunter22"); err != nil {
			t.Fatalf("failed to reauthenticate: %v", err)
		}

		if sessions.session.IDToken != "id-token-1" {
			t.Error("expected fresh token after reauthentication")
		}
	})

	t.Run("ReauthenticateSignedOut", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("provider should not be contacted while signed out")
		})

		if err := svc.Reauthenticate(ctx, "hunter22"); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("DeleteAccountRequiresRecentLogin", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "accounts:delete") {
				authErr(w, http.StatusBadRequest, "CREDENTIAL_TOO_OLD_LOGIN_AGAIN")
				return
			}
			authOK(w, "user@example.com")
		})
		sessions.session = &models.Session{
			Email:        "user@example.com",
			LocalID:      "local-1",
			IDToken:      "id-token-1",
			RefreshToken: "refresh-token-1",
			ExpiresAt:    time.Now().Add(time.Hour),
		}

		if err := svc.DeleteAccount(ctx); !errors.Is(err, shared.ErrRequiresRecentLogin) {
			t.Errorf("expected ErrRequiresRecentLogin, got %v", err)
		}
	})

	t.Run("TokenValidSession", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("provider should not be contacted for a valid token")
		})
		sessions.session = &models.Session{
			Email:        "user@example.com",
			LocalID:      "local-1",
			IDToken:      "id-token-1",
			RefreshToken: "refresh-token-1",
			ExpiresAt:    time.Now().Add(time.Hour),
		}

		token, err := svc.Token(ctx)
		if err != nil {
			t.Fatalf("failed to get token: %v", err)
		}

		if token != "id-token-1" {
			t.Errorf("expected cached token, got %s", token)
		}
	})

	t.Run("TokenRefreshesExpiredSession", func(t *testing.T) {
		svc, sessions := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/token") {
				t.Errorf("expected refresh endpoint, got %s", r.URL.Path)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if r.PostForm.Get("grant_type") != "refresh_token" {
				t.Errorf("expected refresh_token grant, got %s", r.PostForm.Get("grant_type"))
			}

			json.NewEncoder(w).Encode(map[string]any{
				"id_token":      "id-token-2",
				"refresh_token": "refresh-token-2",
				"expires_in":    "3600",
			})
		})
		sessions.session = &models.Session{
			Email:        "user@example.com",
			LocalID:      "local-1",
			IDToken:      "stale-token",
			RefreshToken: "refresh-token-1",
			ExpiresAt:    time.Now().Add(-time.Hour),
		}

		token, err := svc.Token(ctx)
		if err != nil {
			t.Fatalf("failed to refresh token: %v", err)
		}

		if token != "id-token-2" {
			t.Errorf("expected renewed token, got %s", token)
		}

		if sessions.session.RefreshToken != "refresh-token-2" {
			t.Error("expected rotated refresh token persisted")
		}
	})

	t.Run("TokenSignedOut", func(t *testing.T) {
		svc, _ := identityFixture(t, func(w http.ResponseWriter, r *http.Request) {})

		if _, err := svc.Token(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}
