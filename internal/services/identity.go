// Identity provider implementation of [Identity]
//
// Email/password REST API in the Google Identity Toolkit dialect:
// accounts:signUp, accounts:signInWithPassword, accounts:update,
// accounts:delete, plus a separate OAuth2-style refresh-token endpoint.

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/oauth2"
)

// IdentityService implements [Identity] against the hosted provider.
// The current session is cached through a [SessionStore]; CurrentAccount
// never touches the network.
type IdentityService struct {
	baseURL    string
	tokenURL   string
	apiKey     string
	httpClient *http.Client
	sessions   SessionStore

	mu       sync.Mutex
	watchers map[int]func(*models.Account)
	nextID   int
}

// NewIdentityService creates an identity client from configuration.
// A nil client falls back to [http.DefaultClient].
func NewIdentityService(cfg shared.IdentityConfig, sessions SessionStore, client *http.Client) (*IdentityService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: identity api_key", shared.ErrMissingCredentials)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: identity base_url", shared.ErrMissingCredentials)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &IdentityService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL:   cfg.TokenURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		sessions:   sessions,
		watchers:   make(map[int]func(*models.Account)),
	}, nil
}

// Name returns the service name.
func (s *IdentityService) Name() string {
	return "Identity"
}

// authResponse is the provider payload for signUp/signIn/update calls.
type authResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

// errorResponse is the provider's error envelope.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// mapProviderError converts provider error codes to shared sentinels.
// Codes carry optional suffixes (e.g. "WEAK_PASSWORD : ..."), so match on
// the leading token.
func mapProviderError(code string) error {
	head, _, _ := strings.Cut(code, " ")
	switch head {
	case "EMAIL_EXISTS":
		return shared.ErrDuplicateAccount
	case "WEAK_PASSWORD", "INVALID_EMAIL", "MISSING_PASSWORD":
		return fmt.Errorf("%w: %s", shared.ErrWeakCredential, code)
	case "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS":
		return shared.ErrInvalidCredential
	case "CREDENTIAL_TOO_OLD_LOGIN_AGAIN", "TOKEN_EXPIRED":
		return shared.ErrRequiresRecentLogin
	case "USER_NOT_FOUND", "USER_DISABLED":
		return fmt.Errorf("%w: %s", shared.ErrNotFound, code)
	}
	return fmt.Errorf("%w: %s", shared.ErrAPIRequest, code)
}

// doRequest POSTs a JSON body to an accounts:* endpoint and decodes the
// response, mapping provider error codes to shared sentinels.
func (s *IdentityService) doRequest(ctx context.Context, action string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := s.baseURL + "/accounts:" + action + "?key=" + url.QueryEscape(s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
			return mapProviderError(envelope.Error.Message)
		}
		return fmt.Errorf("%w: identity status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// sessionFromAuth builds a Session from a provider auth response.
func sessionFromAuth(auth *authResponse) *models.Session {
	now := time.Now()
	expiresIn, err := strconv.Atoi(auth.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 3600
	}
	return &models.Session{
		Email:        auth.Email,
		DisplayName:  auth.DisplayName,
		LocalID:      auth.LocalID,
		IDToken:      auth.IDToken,
		RefreshToken: auth.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(expiresIn) * time.Second),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CurrentAccount returns the cached session's account, or nil when signed
// out. Reflects the cache only; it never contacts the provider.
func (s *IdentityService) CurrentAccount() *models.Account {
	session, err := s.sessions.Load()
	if err != nil || session == nil {
		return nil
	}
	account := session.Account()
	return &account
}

// SignUp creates an account, sets its display name, and caches the session.
func (s *IdentityService) SignUp(ctx context.Context, email, password, displayName string) (*models.Account, error) {
	if !models.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", shared.ErrInvalidInput)
	}

	var auth authResponse
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	if err := s.doRequest(ctx, "signUp", body, &auth); err != nil {
		return nil, err
	}

	if displayName != "" {
		var updated authResponse
		update := map[string]any{"idToken": auth.IDToken, "displayName": displayName, "returnSecureToken": true}
		if err := s.doRequest(ctx, "update", update, &updated); err != nil {
			return nil, fmt.Errorf("account created but display name not set: %w", err)
		}
		auth.DisplayName = displayName
		if updated.IDToken != "" {
			auth.IDToken = updated.IDToken
			auth.RefreshToken = updated.RefreshToken
			auth.ExpiresIn = updated.ExpiresIn
		}
	}

	return s.establishSession(&auth)
}

// SignIn authenticates with email and password and caches the session.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	var auth authResponse
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	if err := s.doRequest(ctx, "signInWithPassword", body, &auth); err != nil {
		return nil, err
	}
	return s.establishSession(&auth)
}

func (s *IdentityService) establishSession(auth *authResponse) (*models.Account, error) {
	session := sessionFromAuth(auth)
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := s.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}

	account := session.Account()
	s.notify(&account)
	return &account, nil
}

// SignOut clears the cached session. Always succeeds locally; a failure to
// clear the cache is the only error path.
func (s *IdentityService) SignOut(ctx context.Context) error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.notify(nil)
	return nil
}

// Reauthenticate refreshes the session with a password credential for the
// currently signed-in account.
func (s *IdentityService) Reauthenticate(ctx context.Context, password string) error {
	session, err := s.sessions.Load()
	if err != nil || session == nil {
		return shared.ErrNotAuthenticated
	}
	_, err = s.SignIn(ctx, session.Email, password)
	return err
}

// DeleteAccount deletes the identity record for the current session.
// The session cache is left untouched; callers sign out separately.
func (s *IdentityService) DeleteAccount(ctx context.Context) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	return s.doRequest(ctx, "delete", map[string]any{"idToken": token}, nil)
}

// Token returns a valid ID token for the current session, renewing it
// through the refresh endpoint when expired.
func (s *IdentityService) Token(ctx context.Context) (string, error) {
	session, err := s.sessions.Load()
	if err != nil || session == nil {
		return "", shared.ErrNotAuthenticated
	}

	token := &oauth2.Token{
		AccessToken:  session.IDToken,
		RefreshToken: session.RefreshToken,
		Expiry:       session.ExpiresAt,
	}
	if token.Valid() {
		return token.AccessToken, nil
	}

	source := &refreshTokenSource{ctx: ctx, service: s, refreshToken: session.RefreshToken}
	renewed, err := oauth2.ReuseTokenSource(nil, source).Token()
	if err != nil {
		return "", err
	}

	session.IDToken = renewed.AccessToken
	if renewed.RefreshToken != "" {
		session.RefreshToken = renewed.RefreshToken
	}
	session.ExpiresAt = renewed.Expiry
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(session); err != nil {
		return "", fmt.Errorf("failed to cache refreshed session: %w", err)
	}

	return renewed.AccessToken, nil
}

// OnAuthChange registers a callback invoked with the account on sign-in and
// nil on sign-out. Returns an unsubscribe function.
func (s *IdentityService) OnAuthChange(fn func(*models.Account)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.watchers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

func (s *IdentityService) notify(account *models.Account) {
	s.mu.Lock()
	watchers := make([]func(*models.Account), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(account)
	}
}

// refreshTokenSource implements [oauth2.TokenSource] against the provider's
// refresh-token endpoint (grant_type=refresh_token form POST).
type refreshTokenSource struct {
	ctx          context.Context
	service      *IdentityService
	refreshToken string
}

func (r *refreshTokenSource) Token() (*oauth2.Token, error) {
	s := r.service
	if s.tokenURL == "" {
		return nil, fmt.Errorf("%w: no token endpoint configured", shared.ErrRefreshFailed)
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", r.refreshToken)

	endpoint := s.tokenURL + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(r.ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrRefreshFailed, resp.StatusCode)
	}

	var payload struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	expiresIn, err := strconv.Atoi(payload.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 3600
	}

	return &oauth2.Token{
		AccessToken:  payload.IDToken,
		RefreshToken: payload.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
