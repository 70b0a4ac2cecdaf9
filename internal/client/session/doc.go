// Package session holds the authentication state of the client: the
// current (user, token) pair, last write wins.
//
// The token is persisted in the "token" cookie with a fixed lifetime and
// the user is cached in local storage, so a restarted client can restore the
// session (Init). Every change is mirrored onto the API client's bearer
// header through TokenSetter.
package session
