// Package client talks to the Vilarbucks REST API.
//
// # Overview
//
// Client is the transport-agnostic contract the rest of the application
// depends on: authentication (Login, Register, GetCurrentProfile, Logout),
// tasks (ListTasks, CompleteTask) and a liveness probe (Ping). HTTPClient
// implements it over JSON/HTTP with bearer-token authorization.
//
// # Error Handling
//
// Failures are returned as *AuthError, which unwraps to one of the sentinel
// errors so callers can use errors.Is: ErrUnauthorized (401/403),
// ErrUnavailable (transport failures and 502/503/504), ErrBadRequest (other
// 4xx), ErrServer (other 5xx) and ErrMalformedResponse.
//
// The client never retries. Timeouts come from the configured http.Client
// and from the caller's context.
package client
