// Package client contains client-side building blocks for the catering
// ordering CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the catering backend: Login, catalog listing, cart mutation and
//     listing, order calculation, address listing and checkout.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that stamps
//     every request with the device identification headers and the current
//     bearer token, read from a TokenSource at send time.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures are returned as *NetworkError and match ErrUnavailable
// with errors.Is. Non-2xx responses are returned as *APIError carrying the
// status code and body; 401 and 403 also match ErrUnauthorized. Nothing is
// retried.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and the configured request timeout.
//
// See Also
//
//   - Interface:  Client
//   - HTTP impl:  HTTPClient
//   - DB helpers: InitDatabase, RunMigrations
//   - Errors:     NetworkError, APIError, ErrUnavailable, ErrUnauthorized
package client
