package models

import "time"

// Cookie is a named value persisted with an expiry, the way the browser
// keeps the session token.
type Cookie struct {
	Name      string
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the cookie is no longer valid at now.
func (c *Cookie) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
