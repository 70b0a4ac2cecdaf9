// Package common holds names shared by the HTTP client, the session store
// and the storage wipes.
package common

const (
	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName tags every outgoing request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// TokenCookieName is the cookie holding the session token.
	TokenCookieName = "token"
	// CachedUserKey is the local storage key of the logged-in user.
	CachedUserKey = "user"
	// RegistrationDraftKey is the session storage key of the unfinished
	// registration form.
	RegistrationDraftKey = "register_draft"
)
