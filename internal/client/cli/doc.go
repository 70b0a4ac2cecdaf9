// Package cli provides the interactive userreg console.
//
// It wires configuration, local storage, the API client and services, and
// runs a REPL whose command set follows the login state. A background
// watcher pings the API and flips the prompt between online and offline.
//
// Logged out:
//   - register: two-step sign-up form
//   - login
//
// Logged in:
//   - profile, edit, refresh, delete
//   - clearcache, wipe
//   - logout, status
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
