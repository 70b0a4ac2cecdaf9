// Package client contains the client-side building blocks that talk to the
// outside world: the REST API of the user service and the local database.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface):
//     RegisterUser, Login, UpdateProfile, DeleteAccount, GetUserByID, Ping
//     and SetAuthToken.
//  2. An HTTP/JSON implementation (see HTTPClient) that keeps the bearer
//     token, tags requests with an X-Request-ID, follows at most five
//     redirects, treats 2xx and 3xx as success, and logs every request and
//     response.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     SQLite file and applying the embedded goose migrations.
//
// # Error Handling
//
// Non-success responses become *APIError, carrying the status and the
// server message. Common conditions are exposed as sentinels usable with
// errors.Is: ErrUnavailable (transport failure), ErrUnauthorized (401/403),
// ErrNotFound (404). MessageOf picks the text to show to the user.
package client
