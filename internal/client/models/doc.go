// Package models defines the client-side data models of the UserReg CLI:
// the user profile as the REST API returns it, the request payloads sent to
// it, the persisted session cookie, and the form validation rules applied
// before anything is sent.
package models
