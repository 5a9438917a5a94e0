package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Identity provider errors
	ErrAuthRequired        = fmt.Errorf("authentication required")
	ErrNotAuthenticated    = fmt.Errorf("not authenticated")
	ErrDuplicateAccount    = fmt.Errorf("email already registered")
	ErrInvalidCredential   = fmt.Errorf("invalid email or password")
	ErrWeakCredential      = fmt.Errorf("password does not meet policy")
	ErrRequiresRecentLogin = fmt.Errorf("credential too old, reauthentication required")
	ErrTokenExpired        = fmt.Errorf("session token expired")
	ErrRefreshFailed       = fmt.Errorf("token refresh failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRateLimited        = fmt.Errorf("rate limited by upstream API")
	ErrNotFound           = fmt.Errorf("not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
