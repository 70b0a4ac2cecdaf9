package services

import "errors"

var (
	// ErrNotLoggedIn is returned by profile operations without a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionLost means the token cookie disappeared while the user was
	// logged in. The session has been ended.
	ErrSessionLost = errors.New("session token lost")
	// ErrRefreshFailed means the profile was saved but could not be read
	// back.
	ErrRefreshFailed = errors.New("refresh user data failed")
)
