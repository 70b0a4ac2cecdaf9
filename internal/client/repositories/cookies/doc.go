// Package cookies persists named values with an expiry, standing in for the
// browser cookie jar that holds the session token.
//
// Expired cookies are treated as absent: Get returns (nil, nil) and List
// skips them. They are physically removed by Purge, which runs at start-up,
// or by the next Set of the same name.
package cookies
