// Package client contains the client-side building blocks for talking to the
// story API.
//
// # Overview
//
//  1. A transport-agnostic contract (Client): Register, Login, AddStory and
//     ListStories.
//  2. A REST implementation (HTTPClient) that sends JSON for auth calls and a
//     multipart/form-data body for story uploads, and maps HTTP outcomes to
//     sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and the embedded goose migrations.
//
// # Error Handling
//
// Failures reported by the API come back as *APIError, whose Error() is the
// service's own message. Conditions can be matched with errors.Is:
// ErrUnauthorized (401/403), ErrUnavailable (5xx, network failures and
// timeouts), ErrRejected (other 4xx or "error": true bodies) and
// ErrMalformedResponse (a 2xx answer that cannot be decoded).
//
// All operations accept context.Context and honor cancellation.
package client
