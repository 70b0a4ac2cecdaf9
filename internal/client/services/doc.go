// Package services holds the client use cases: registration and login,
// profile management, and the local storage wipes. Services sit between the
// console commands and the API client, and keep the session store current.
package services
